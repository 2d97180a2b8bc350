// Package mapview models the per-order delivery map: the courier and customer
// markers, their display distance and the route drawn between them.
//
// A driving route comes from the routing service. When it cannot be obtained
// the view keeps a dashed straight line between the two points.
package mapview
