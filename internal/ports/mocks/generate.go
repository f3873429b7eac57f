//go:generate mockgen -source=../cache_store.go         -destination=./mock_cache_store.go         -package=mocks
//go:generate mockgen -source=../logger.go              -destination=./mock_logger.go              -package=mocks
//go:generate mockgen -source=../order_repository.go    -destination=./mock_order_repository.go    -package=mocks
//go:generate mockgen -source=../product_repository.go  -destination=./mock_product_repository.go  -package=mocks
//go:generate mockgen -source=../category_repository.go -destination=./mock_category_repository.go -package=mocks
//go:generate mockgen -source=../review_repository.go   -destination=./mock_review_repository.go   -package=mocks

package mocks
