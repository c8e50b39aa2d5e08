// Package picrust submits PICRUSt prediction workflows to an LSF cluster
// and waits for them to drain.
//
// The executer is a job-submission sink at the boundary of the table
// machinery: it only consumes and produces file paths. Consumers read the
// predicted trait tables it leaves behind as their own input.
package picrust
