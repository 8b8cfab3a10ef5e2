// Package eda holds the aggregations behind each analysis section.
//
// Every function takes an immutable *dataset.Table and returns a freshly
// built aggregate; nothing is cached between calls, so running a function
// twice on the same table yields identical results. Errors are
// *errors.AnalysisError values classified by code.
package eda
