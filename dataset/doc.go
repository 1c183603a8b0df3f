// Package dataset reads p-median instances from CSV.
//
// The layout is one header row followed by one row per customer:
//
//	Customer,A,B,C,Demand
//	c0,2,5,9,10
//	c1,8,1,4,5
//
// The first column holds customer labels (its header is ignored), the middle
// columns are facilities named by their header cell, and the last column,
// headed "Demand", is the customer's demand weight. Every number must be
// finite and non-negative.
package dataset
