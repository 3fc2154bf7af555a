package analysis

import "fmt"

func pairLabel(job, class int) string {
	return fmt.Sprintf("%s_class%d", jobLabel(job), class)
}

// IntersectionResult is one ordered cross-job class pair: the shared
// identity keys, their count, and the count normalized by the size of the
// first-named (source) class. The fraction is deliberately asymmetric;
// pairing (a,b) and (b,a) both appear in the result sequence.
type IntersectionResult struct {
	JobA, JobB     int
	ClassA, ClassB int
	Keys           map[string]struct{}
	Count          int
	Fraction       float64

	source *ClassPartition
}

// PairLabelA returns the "job<NNN>_class<K>" label of the source class.
func (r IntersectionResult) PairLabelA() string { return pairLabel(r.JobA, r.ClassA) }

// PairLabelB returns the "job<NNN>_class<K>" label of the target class.
func (r IntersectionResult) PairLabelB() string { return pairLabel(r.JobB, r.ClassB) }

// Intersections computes every cross-job class pair over the partitions:
// all ordered pairs of distinct jobs, class ids ascending within each job,
// jobs in input order. Same-job pairs are never computed, even when one
// job number appears twice in the input list; within-job classes are
// disjoint by construction and self-comparison is uninformative.
//
// Zero-overlap pairs are included so the matrices are complete. A class
// with zero keys yields fraction 0 rather than a division error.
func Intersections(parts []*ClassPartition) []IntersectionResult {
	var results []IntersectionResult
	for _, pa := range parts {
		for _, pb := range parts {
			if pa.Job.Number == pb.Job.Number {
				continue
			}
			for _, ca := range pa.ClassIDs {
				keysA := pa.Keys(ca)
				for _, cb := range pb.ClassIDs {
					shared := intersectKeys(keysA, pb.Keys(cb))
					frac := 0.0
					if len(keysA) > 0 {
						frac = float64(len(shared)) / float64(len(keysA))
					}
					results = append(results, IntersectionResult{
						JobA:     pa.Job.Number,
						JobB:     pb.Job.Number,
						ClassA:   ca,
						ClassB:   cb,
						Keys:     shared,
						Count:    len(shared),
						Fraction: frac,
						source:   pa,
					})
				}
			}
		}
	}
	return results
}

func intersectKeys(a, b map[string]struct{}) map[string]struct{} {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	out := make(map[string]struct{})
	for k := range small {
		if _, ok := large[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}
