package starmap

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// GaussianProcess approximates scattered support points with a
// kernel = RBF(lengthScaleEast, lengthScaleNorth) + WhiteNoise Gaussian
// process, fitted independently per output dimension (mean and variance
// columns share the same standardized inputs and hyperparameters).
// Inputs are z-score standardized; outputs are mean-centered ("normalize_y")
// before fitting and re-added on prediction.
type GaussianProcess struct {
	InitialLengthEast, InitialLengthNorth float64
	NoiseFloor                            float64
	Restarts                              int
	Rand                                  *rand.Rand

	meanE, stdE, meanN, stdN float64
	trainX                   [][2]float64
	lengthE, lengthN, noise  float64
	yMeans                   []float64
	alphas                   [][]float64 // per output dim, length n
	chol                     *mat.Cholesky
}

func (gp *GaussianProcess) rng() *rand.Rand {
	if gp.Rand != nil {
		return gp.Rand
	}
	return rand.New(rand.NewSource(1))
}

func (gp *GaussianProcess) Fit(coords [][2]float64, values [][]float64) error {
	n := len(coords)
	if n == 0 {
		return fmt.Errorf("starmap: gaussian_process requires at least one support point")
	}
	dim := len(values[0])

	gp.meanE, gp.stdE = standardizeParams(coords, 0)
	gp.meanN, gp.stdN = standardizeParams(coords, 1)

	gp.trainX = make([][2]float64, n)
	for i, c := range coords {
		gp.trainX[i] = [2]float64{(c[0] - gp.meanE) / gp.stdE, (c[1] - gp.meanN) / gp.stdN}
	}

	gp.yMeans = make([]float64, dim)
	centered := make([][]float64, dim)
	for d := 0; d < dim; d++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += values[i][d]
		}
		gp.yMeans[d] = sum / float64(n)
		centered[d] = make([]float64, n)
		for i := 0; i < n; i++ {
			centered[d][i] = values[i][d] - gp.yMeans[d]
		}
	}

	restarts := gp.Restarts
	if restarts < 1 {
		restarts = 1
	}
	rng := gp.rng()

	bestLML := math.Inf(-1)
	bestE, bestN, bestNoise := gp.InitialLengthEast, gp.InitialLengthNorth, gp.NoiseFloor

	for attempt := 0; attempt < restarts; attempt++ {
		lengthE := sampleAround(rng, gp.InitialLengthEast)
		lengthN := sampleAround(rng, gp.InitialLengthNorth)
		noise := gp.NoiseFloor * (1 + rng.Float64()*50)
		if attempt == 0 {
			lengthE, lengthN, noise = gp.InitialLengthEast, gp.InitialLengthNorth, gp.NoiseFloor
		}

		K := buildKernelMatrix(gp.trainX, gp.trainX, lengthE, lengthN)
		for i := 0; i < n; i++ {
			K.Set(i, i, K.At(i, i)+noise)
		}

		var chol mat.Cholesky
		if ok := chol.Factorize(K); !ok {
			continue
		}

		lml := 0.0
		for d := 0; d < dim; d++ {
			l, ok := logMarginalLikelihood(&chol, centered[d])
			if !ok {
				lml = math.Inf(-1)
				break
			}
			lml += l
		}
		if lml > bestLML {
			bestLML = lml
			bestE, bestN, bestNoise = lengthE, lengthN, noise
		}
	}

	gp.lengthE, gp.lengthN, gp.noise = bestE, bestN, bestNoise

	K := buildKernelMatrix(gp.trainX, gp.trainX, gp.lengthE, gp.lengthN)
	for i := 0; i < n; i++ {
		K.Set(i, i, K.At(i, i)+gp.noise)
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(K); !ok {
		return fmt.Errorf("starmap: gaussian_process kernel matrix is not positive definite even at floor noise")
	}
	gp.chol = &chol

	gp.alphas = make([][]float64, dim)
	for d := 0; d < dim; d++ {
		y := mat.NewVecDense(n, centered[d])
		var alpha mat.VecDense
		if err := gp.chol.SolveVecTo(&alpha, y); err != nil {
			return fmt.Errorf("starmap: gaussian_process solve failed: %w", err)
		}
		gp.alphas[d] = alpha.RawVector().Data
	}
	return nil
}

func (gp *GaussianProcess) Predict(coords [][2]float64) ([][]float64, error) {
	std := gp.standardize(coords)
	Ks := buildKernelMatrix(std, gp.trainX, gp.lengthE, gp.lengthN)

	dim := len(gp.alphas)
	out := make([][]float64, len(coords))
	for i := range out {
		out[i] = make([]float64, dim)
	}
	for d := 0; d < dim; d++ {
		alpha := mat.NewVecDense(len(gp.alphas[d]), gp.alphas[d])
		var mean mat.VecDense
		mean.MulVec(Ks, alpha)
		for i := 0; i < len(coords); i++ {
			out[i][d] = mean.AtVec(i) + gp.yMeans[d]
		}
	}
	return out, nil
}

// PredictStd returns the predictive standard deviation at each query point,
// including the fitted white-noise variance, used by auto_improve to weight
// resampling.
func (gp *GaussianProcess) PredictStd(coords [][2]float64) ([]float64, error) {
	std := gp.standardize(coords)
	Ks := buildKernelMatrix(std, gp.trainX, gp.lengthE, gp.lengthN)
	n, _ := Ks.Dims()

	out := make([]float64, n)
	selfCov := 1.0 + gp.noise
	for i := 0; i < n; i++ {
		kStar := mat.NewVecDense(len(gp.trainX), mat.Row(nil, i, Ks))
		var v mat.VecDense
		if err := gp.chol.SolveVecTo(&v, kStar); err != nil {
			return nil, fmt.Errorf("starmap: gaussian_process predictive variance solve failed: %w", err)
		}
		var quad float64
		// quad = kStar^T K^-1 kStar = kStar . v
		for j := 0; j < v.Len(); j++ {
			quad += kStar.AtVec(j) * v.AtVec(j)
		}
		variance := selfCov - quad
		if variance < 0 {
			variance = 0
		}
		out[i] = math.Sqrt(variance)
	}
	return out, nil
}

func (gp *GaussianProcess) standardize(coords [][2]float64) [][2]float64 {
	out := make([][2]float64, len(coords))
	for i, c := range coords {
		out[i] = [2]float64{(c[0] - gp.meanE) / gp.stdE, (c[1] - gp.meanN) / gp.stdN}
	}
	return out
}

func standardizeParams(coords [][2]float64, axis int) (mean, std float64) {
	n := float64(len(coords))
	for _, c := range coords {
		mean += c[axis]
	}
	mean /= n
	for _, c := range coords {
		d := c[axis] - mean
		std += d * d
	}
	std = math.Sqrt(std / n)
	if std < 1e-9 {
		std = 1
	}
	return
}

func buildKernelMatrix(a, b [][2]float64, lengthE, lengthN float64) *mat.Dense {
	K := mat.NewDense(len(a), len(b), nil)
	for i, pa := range a {
		for j, pb := range b {
			de := (pa[0] - pb[0]) / lengthE
			dn := (pa[1] - pb[1]) / lengthN
			K.Set(i, j, math.Exp(-0.5*(de*de+dn*dn)))
		}
	}
	return K
}

func logMarginalLikelihood(chol *mat.Cholesky, y []float64) (float64, bool) {
	n := len(y)
	yVec := mat.NewVecDense(n, y)
	var alpha mat.VecDense
	if err := chol.SolveVecTo(&alpha, yVec); err != nil {
		return 0, false
	}
	quad := mat.Dot(yVec, &alpha)

	var logDet float64
	var L mat.TriDense
	chol.LTo(&L)
	for i := 0; i < n; i++ {
		logDet += math.Log(L.At(i, i))
	}
	logDet *= 2

	lml := -0.5*quad - 0.5*logDet - float64(n)/2*math.Log(2*math.Pi)
	return lml, true
}

func sampleAround(rng *rand.Rand, initial float64) float64 {
	if initial <= 0 {
		initial = 1
	}
	factor := math.Exp((rng.Float64()*2 - 1) * math.Log(5)) // in [initial/5, initial*5]
	return initial * factor
}
