// Package domain models Caltrans Commercial Wholesale Web Portal (CWWP) feed
// records and the derivations the catalog site is built from.
//
// # Data Source
//
// Caltrans publishes district status feeds as JSON documents of the form
// {"data": [ <item>... ]} at
// https://cwwp2.dot.ca.gov/data/d{n}/{tc}/{tc}StatusD{dd}.json, where tc is
// one of cc, cctv, cms, lcs, rwis, tt and dd is the two-digit district id.
// Twelve districts partition the state; not every feed type is published for
// every district (see [FeedTypes]).
//
// # Feed Conventions
//
// Each item is a single-key wrapper object whose key names its type:
//
//	{"cctv": {...}}  traffic camera
//	{"cc":   {...}}  chain control
//	{"cms":  {...}}  changeable message sign
//	{"lcs":  {...}}  lane closure
//	{"rwis": {...}}  roadside weather station
//	{"tt":   {...}}  travel time route
//
// The wrapper key is the only type discriminant. [Item.UnmarshalJSON]
// classifies once at decode time so downstream code switches on [Item.Type]
// instead of probing key presence.
//
// Any field may hold the literal string "Not Reported" in place of its
// nominal type, including numerics and booleans ("true"/"false" strings).
// [Reported] absorbs that convention at the parse boundary: consumers see a
// typed optional and never compare against the sentinel themselves.
//
// Cameras, chain controls, signs, and weather stations are point features
// with a single location. Lane closures and travel times are line features
// with begin/end location pairs whose field names carry begin/end prefixes
// upstream. A line record missing either endpoint is invalid for display but
// its county and place fields still count toward catalogs.
//
// # Identity
//
// The upstream index field is unique within a (type, district) scope and is
// the only stable identity a record has. [ItemID] composes
// "{type}-d{district}-i{index}" so repeated pulls of the same record produce
// the same deep link. Records without an index get no id.
//
// Highway designations are not structured upstream; [Highway] recovers them
// heuristically from location names that start with an I/US/SR/OR token.
package domain
