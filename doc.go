// Package spikelib prepares neuronal spike-train recordings for feature
// extraction and classification.
//
// A spike train is an ordered sequence of inter-spike intervals (ISIs) or
// absolute spike times. spikelib provides composable transforms that apply
// the same per-train math to two representations: dense N-dimensional
// tensors, where one axis indexes time steps, and row-oriented tables whose
// series column holds one delimiter-joined train per row.
//
// # Installation
//
//	go get github.com/YuminosukeSato/spikelib
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/spikelib/dataset"
//	    "github.com/YuminosukeSato/spikelib/preprocessing"
//	)
//
//	func main() {
//	    table, err := dataset.NewTable(
//	        []string{"1 2 1 3", "2 2 2 4"},
//	        []string{"subject-1", "subject-2"},
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    bin, err := preprocessing.NewTrainBinarizationTransform(2)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    out, err := preprocessing.TransformTable(bin, table)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(out.SeriesColumn()) // [1.00 2.00 1.00 1.00 1.00 1.00 0.00 1.00]
//	}
//
// # Packages
//
//   - preprocessing: transform contract, series codec, ISI shuffle,
//     binarization, spike-times-to-ISI and pipelines
//   - core/tensor: dense tensors, axis lanes and ragged results
//   - core/model: classifier and fit/predict contracts, matrix adapter
//   - dataset: series/groups tables and group-aware splitting
//   - config: YAML and environment configuration (koanf)
//   - plotting: raster and binned-train figures (gonum/plot)
//   - pkg/errors: structured errors on cockroachdb/errors
//   - pkg/log: structured logging backed by zerolog
//
// # Ownership
//
// Transforms copy their input by default. Pass preprocessing.WithInPlace(true)
// to let a transform rewrite the caller's tensor or table instead.
//
// # License
//
// spikelib is released under the MIT License.
package spikelib
