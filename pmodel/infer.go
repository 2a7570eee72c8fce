package pmodel

import (
	"math"

	"bitbucket.org/Davydov/goherit/checkpoint"
	"bitbucket.org/Davydov/goherit/gene"
)

// spreadMask maps the k-th subset of the given positions onto a
// bitmask over all people.
func spreadMask(k int, positions []int) (mask uint64) {
	for i, pos := range positions {
		if k&(1<<uint(i)) != 0 {
			mask |= 1 << uint(pos)
		}
	}
	return
}

// nextCounts advances the gene-count assignment like a base-3
// odometer; it returns false after the last assignment.
func nextCounts(counts []int) bool {
	for i := range counts {
		counts[i]++
		if counts[i] < gene.NCounts {
			return true
		}
		counts[i] = 0
	}
	return false
}

// Infer enumerates every hypothesis consistent with the trait
// observations, accumulates per-person marginals and returns the
// normalized result.
func (m *Model) Infer() (*Result, error) {
	return m.InferCheckpoint(nil)
}

// InferCheckpoint runs Infer saving intermediate state through cio;
// an earlier checkpoint, if present, is resumed. With a nil cio no
// checkpointing is performed.
//
// The outer loop runs over trait subsets: only subsets consistent
// with the observations are generated, by enumerating subsets of the
// unobserved positions and adding the observed-present people to
// each. The inner loop runs over all 3^n gene-count assignments.
// Checkpoints are saved at trait-subset granularity.
func (m *Model) InferCheckpoint(cio *checkpoint.IO) (*Result, error) {
	if !m.cptDone {
		m.UpdateMatrix()
	}

	n := m.data.NPeople()
	res := newResult(m.data)
	pen := m.penetrance()

	nSubsets := 1 << uint(len(m.data.unknownPos))
	start := 0

	if cio != nil {
		cp, err := cio.Load()
		if err != nil {
			return nil, err
		}
		if cp != nil {
			restoreResult(res, cp)
			start = cp.TraitSubsetsDone
			if cp.Final {
				return res, res.Normalize()
			}
			log.Noticef("Resuming from trait subset %d/%d", start, nSubsets)
		}
		cio.SetNow()
	}

	log.Infof("Enumerating %d trait subsets for %d people", nSubsets, n)

	counts := make([]int, n)
	for k := start; k < nSubsets; k++ {
		traits := m.data.present | spreadMask(k, m.data.unknownPos)

		for i := range counts {
			counts[i] = 0
		}
		for {
			p := m.jointProbability(counts, traits, &pen)
			res.accumulate(counts, traits, p)
			if !nextCounts(counts) {
				break
			}
		}

		if cio != nil && cio.Old() {
			if err := cio.Save(checkpointData(res, k+1, false)); err != nil {
				return nil, err
			}
		}
	}

	if cio != nil {
		if err := cio.Save(checkpointData(res, nSubsets, true)); err != nil {
			return nil, err
		}
	}

	return res, res.Normalize()
}

// evidence returns the total probability of the observations under
// the current parameters without accumulating marginals.
func (m *Model) evidence() (sum float64) {
	if !m.cptDone {
		m.UpdateMatrix()
	}

	n := m.data.NPeople()
	pen := m.penetrance()
	nSubsets := 1 << uint(len(m.data.unknownPos))

	counts := make([]int, n)
	for k := 0; k < nSubsets; k++ {
		traits := m.data.present | spreadMask(k, m.data.unknownPos)

		for i := range counts {
			counts[i] = 0
		}
		for {
			sum += m.jointProbability(counts, traits, &pen)
			if !nextCounts(counts) {
				break
			}
		}
	}
	return
}

// Likelihood returns the log likelihood of the observations, i.e.
// the log of the evidence probability.
func (m *Model) Likelihood() float64 {
	sum := m.evidence()
	if sum <= 0 {
		return math.Inf(-1)
	}
	return math.Log(sum)
}

// checkpointData converts the accumulator state for saving.
func checkpointData(res *Result, done int, final bool) *checkpoint.Data {
	cp := &checkpoint.Data{
		TraitSubsetsDone: done,
		GeneSums:         make([][]float64, len(res.People)),
		TraitSums:        make([][]float64, len(res.People)),
		EvidenceSum:      res.Evidence,
		Final:            final,
	}
	for i := range res.People {
		cp.GeneSums[i] = append([]float64(nil), res.People[i].Gene[:]...)
		cp.TraitSums[i] = append([]float64(nil), res.People[i].Trait[:]...)
	}
	return cp
}

// restoreResult loads the accumulator state from a checkpoint.
func restoreResult(res *Result, cp *checkpoint.Data) {
	res.Evidence = cp.EvidenceSum
	for i := range res.People {
		copy(res.People[i].Gene[:], cp.GeneSums[i])
		copy(res.People[i].Trait[:], cp.TraitSums[i])
	}
}
