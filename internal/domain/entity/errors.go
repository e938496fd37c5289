package entity

import "errors"

var (
	// ErrInvalidImage изображение не задано, не декодируется или размеры эталона и проверяемого фото различаются.
	ErrInvalidImage = errors.New("invalid image")

	// ErrInvalidManifest манифест не разобран или содержит некорректную запись.
	ErrInvalidManifest = errors.New("invalid manifest")
)
