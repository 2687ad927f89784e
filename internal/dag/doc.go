// Package dag models how project nodes nest under each other.
//
// Every project is a node and every sub-project reference is a directed edge
// from the parent to the child. The resolver uses the graph to reject nesting
// cycles and projects claimed by more than one parent before it materializes
// the project tree.
package dag
