// Package stayindex ingests tabular extracts of short-term-rental
// listings and materializes two independently searchable document
// collections: one for properties and one for hosts. Each collection is
// paired with a taxonomy store which assigns stable ordinals to facet
// labels so that results can be broken down by neighbourhood, property
// family, price range and the like at query time.
//
// The root package holds the pieces that are independent of any
// particular storage or transport: the Source and Indexer interfaces,
// the header/field extractor, the bucket and family classifiers, the
// row-to-document builders, and the Ingester which drives rows through
// all of the above. Concrete implementations live in subpackages: csv
// (logical-row reading), index (the dual bleve writer), boltdb and
// leveldb (taxonomy stores), aws/s3 and kafka (alternate inputs).
package stayindex
