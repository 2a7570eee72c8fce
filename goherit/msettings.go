package main

import (
	"fmt"

	"bitbucket.org/Davydov/goherit/pmodel"
)

// modelSettings stores settings for creating a new model.
type modelSettings struct {
	data      *pmodel.Data
	sharedPen bool

	startF    string
	randomize bool
}

// newModelSettings initializes modelSettings from global variables
// (command-line arguments).
func newModelSettings(data *pmodel.Data) *modelSettings {
	return &modelSettings{
		data:      data,
		sharedPen: *fixPen,

		startF:    *startF,
		randomize: *randomize,
	}
}

// createInitalized creates a model and initializes its parameters
// from the starting point settings.
func (ms *modelSettings) createInitalized() (*pmodel.Model, error) {
	m := pmodel.NewModel(ms.data, ms.sharedPen)

	if ms.sharedPen {
		log.Info("Using a single shared penetrance")
	}
	log.Infof("Model has %d parameters.", len(m.GetFloatParameters()))

	switch {
	case ms.startF != "":
		par := m.GetFloatParameters()
		l, err := lastLine(ms.startF)
		if err == nil {
			err = par.ReadLine(l)
		}
		if err != nil {
			log.Debug("Reading start file as JSON")
			err2 := par.ReadFromJSON(ms.startF)
			// startF is neither trajectory nor correct JSON
			if err2 != nil {
				log.Error("Error reading start position from JSON:", err2)
				return nil, fmt.Errorf("error reading start position from trajectory file: %v", err)
			}
		}
		if !par.InRange() {
			return nil, errNotInRange
		}
	case ms.randomize:
		log.Info("Using uniform (in the boundaries) random starting point")
		m.GetFloatParameters().Randomize()
	}

	return m, nil
}
