// Package catalog loads the item catalog: the fixed set of items, each with a
// name, an image reference and a size in grid cells, that users place on the
// grid.
//
// # Record Shape
//
// Every source yields records of the form
//
//	{"name": "Sofa", "image": "img/sofa.png", "size": [3, 2]}
//
// Records with an empty name or a size that is not two positive integers are
// skipped with a warning.
//
// # Sources
//
//   - [FileSource]: a local .json, .yaml/.yml or .toml file
//   - [HTTPSource]: an http(s) URL, fetched with retry and cached
//   - [MongoSource]: a MongoDB collection of records
//
// [NewSource] picks the source from a location string.
//
// # Failure Policy
//
// [Loader.Load] returns errors to the caller. [Loader.LoadOrEmpty] logs the
// failure and returns an empty catalog, so a front-end keeps working with no
// items available.
package catalog
