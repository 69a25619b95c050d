// Package pipeline runs batch conversions: enumerate targets, skip those
// already converted, invoke a converter per target, measure the size
// change, and aggregate a summary.
//
// A [Job] is a list of [Group]s sharing one [Converter]. Each group has a
// [Source] that produces its [Target]s; the image job has one group per
// directory, the model job a single group of configured pairs. [Run]
// processes every target sequentially and always yields exactly one
// [Result] per target, whatever happens to its siblings.
package pipeline
