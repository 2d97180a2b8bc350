// Package feed partitions the orders visible to a courier into the dashboard
// buckets and keeps their counters consistent across accept and deliver.
package feed
