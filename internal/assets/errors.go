package assets

import "errors"

// Sentinel errors for asset loading.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrResourceNotFound = errors.New("resource not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
)
