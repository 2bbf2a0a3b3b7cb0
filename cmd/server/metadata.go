package main

import (
	"ricemill/internal/domain/entries"
	v1 "ricemill/internal/infrastructure/http/v1"
	"ricemill/internal/metadata"
)

// setupMetadataRegistry describes every entry module for /api/meta/modules.
func setupMetadataRegistry() *metadata.Registry {
	return v1.DescribeModules(entries.Descriptors(), entries.Samples())
}
