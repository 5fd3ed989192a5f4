// Package entity holds the domain models of the grocery app's data layer and
// one repository constructor per entity type.
//
// Every constructor wires the same offlinerepo policy engine; what differs
// is the entity class. Cart and wishlist are convenience entities: losing
// an item is an annoyance, so offline writes are staged locally and synced
// later. Orders and payment methods are critical entities: offline writes
// fail outright rather than masquerade as committed financial state.
// Products and categories are read caches over catalog data, and addresses
// follow the backend's remote-only write rule.
//
// Models carry ozzo-validation rules; the repository validates before any
// source is consulted.
package entity
