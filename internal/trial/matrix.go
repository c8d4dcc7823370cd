package trial

import (
	"github.com/agrisight/agro-analysis-go/internal/models"
	"github.com/agrisight/agro-analysis-go/pkg/agroerr"
)

// ComputeInteractionMatrix builds the sparse GxE interaction matrix
// over the filtered data. For every (variety, location) pair with at
// least one observation,
//
//	interaction = cell mean - variety mean - location mean + grand mean.
//
// Pairs with no observation are omitted: absence means "no data", never
// "zero interaction".
func (a *Analyzer) ComputeInteractionMatrix(data *trialData) *models.GxEInteractionMatrix {
	matrix := models.NewGxEInteractionMatrix(data.varieties, data.locations)
	for _, variety := range data.varieties {
		for _, location := range data.locations {
			cell, ok := data.cellMean(variety, location)
			if !ok {
				continue
			}
			matrix.Set(variety, location,
				cell-data.varietyMeans[variety]-data.locationMeans[location]+data.grandMean)
		}
	}
	return matrix
}

// completeSubmatrix restricts the data to the full-coverage submatrix
// the multiplicative decompositions require: locations with fewer than
// two observed varieties are dropped, then only varieties observed at
// every retained location are kept. This is the explicit
// unbalanced-design policy — no imputation, no zero filling. Returns an
// InsufficientDataError when the retained block is smaller than 2x2.
func (d *trialData) completeSubmatrix(analysis string) (varieties, locations []string, err error) {
	for _, location := range d.locations {
		observed := 0
		for _, variety := range d.varieties {
			if _, ok := d.cellMean(variety, location); ok {
				observed++
			}
		}
		if observed >= 2 {
			locations = append(locations, location)
		}
	}

	for _, variety := range d.varieties {
		covered := true
		for _, location := range locations {
			if _, ok := d.cellMean(variety, location); !ok {
				covered = false
				break
			}
		}
		if covered {
			varieties = append(varieties, variety)
		}
	}

	if len(varieties) < 2 || len(locations) < 2 {
		return nil, nil, &agroerr.InsufficientDataError{
			Analysis: analysis,
			Reason:   "fewer than 2 varieties with observations at every location; decomposition requires a complete 2x2 block",
		}
	}
	return varieties, locations, nil
}

// doubleCentered returns the AMMI residual matrix over a complete
// submatrix: cell means double-centered so that every row and column
// sums to zero. Margin means are recomputed within the submatrix so the
// precondition holds exactly.
func (d *trialData) doubleCentered(varieties, locations []string) [][]float64 {
	rowMeans := make([]float64, len(varieties))
	colMeans := make([]float64, len(locations))
	var grand float64

	cells := make([][]float64, len(varieties))
	for i, variety := range varieties {
		cells[i] = make([]float64, len(locations))
		for j, location := range locations {
			v, _ := d.cellMean(variety, location)
			cells[i][j] = v
			rowMeans[i] += v
			colMeans[j] += v
			grand += v
		}
	}
	for i := range rowMeans {
		rowMeans[i] /= float64(len(locations))
	}
	for j := range colMeans {
		colMeans[j] /= float64(len(varieties))
	}
	grand /= float64(len(varieties) * len(locations))

	out := make([][]float64, len(varieties))
	for i := range varieties {
		out[i] = make([]float64, len(locations))
		for j := range locations {
			out[i][j] = cells[i][j] - rowMeans[i] - colMeans[j] + grand
		}
	}
	return out
}

// environmentCentered returns the GGE matrix over a complete submatrix:
// cell means centered by location (environment) means only, keeping the
// genotype main effect inside the decomposed matrix per standard GGE
// methodology.
func (d *trialData) environmentCentered(varieties, locations []string) [][]float64 {
	colMeans := make([]float64, len(locations))
	cells := make([][]float64, len(varieties))
	for i, variety := range varieties {
		cells[i] = make([]float64, len(locations))
		for j, location := range locations {
			v, _ := d.cellMean(variety, location)
			cells[i][j] = v
			colMeans[j] += v
		}
	}
	for j := range colMeans {
		colMeans[j] /= float64(len(varieties))
	}

	out := make([][]float64, len(varieties))
	for i := range varieties {
		out[i] = make([]float64, len(locations))
		for j := range locations {
			out[i][j] = cells[i][j] - colMeans[j]
		}
	}
	return out
}
