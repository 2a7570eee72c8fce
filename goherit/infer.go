package main

import (
	"fmt"

	bolt "go.etcd.io/bbolt"

	"bitbucket.org/Davydov/goherit/checkpoint"
	"bitbucket.org/Davydov/goherit/pmodel"
)

// runInfer computes and prints posterior distributions under the
// default model parameters.
func runInfer() *InferSummary {
	data, err := pmodel.NewData(*inferPedF)
	if err != nil {
		log.Fatal(err)
	}

	m := pmodel.NewModel(data, false)

	var cio *checkpoint.IO
	if *checkpointF != "" {
		db, err := bolt.Open(*checkpointF, 0666, nil)
		if err != nil {
			log.Fatal("Error opening checkpoint file:", err)
		}
		defer db.Close()
		// the pedigree digest keys the checkpoint, so a
		// checkpoint is never resumed for different input
		cio = checkpoint.NewIO(db, data.Digest(), *checkpointDT)
		log.Infof("Checkpointing to %s every %v seconds", *checkpointF, *checkpointDT)
	}

	res, err := m.InferCheckpoint(cio)
	if err != nil {
		log.Fatal(err)
	}

	log.Noticef("Evidence probability: %g", res.Evidence)
	fmt.Print(res)

	return &InferSummary{
		Pedigree: data.Pedigree.String(),
		Model:    m.Summary(),
		Result:   res,
	}
}
