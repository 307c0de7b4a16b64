package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name LiveMatchFeed --dir ../usecase --output usecase --outpkg usecasemock --filename live_match_feed_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name MatchDirectory --dir ../usecase --output usecase --outpkg usecasemock --filename match_directory_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Store --dir ../domain/session --output domain/session --outpkg sessionmock --filename store_mock.go
