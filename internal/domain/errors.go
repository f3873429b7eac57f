package domain

import "errors"

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrSlugTaken — slug уже занят другой сущностью.
	ErrSlugTaken = errors.New("slug already exists")
	// ErrCategoryInUse — категорию нельзя удалить, пока на неё ссылаются товары.
	ErrCategoryInUse = errors.New("category has products")
)
