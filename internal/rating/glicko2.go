// Package rating implements the Glicko-2 rating-period update and the
// inactivity decay applied to rating deviations between events.
package rating

import (
	"math"

	"leaguerank/internal/model"
)

const (
	// Tau constrains how fast volatility can move. 0.5 suits leagues where
	// true skill shifts slowly between events.
	Tau = 0.5

	// scale converts between the public 1500-based scale and the internal
	// mu/phi scale of the Glicko-2 paper.
	scale = 173.7178

	// epsilon is the convergence tolerance of the volatility iteration.
	epsilon = 1e-6

	maxIterations = 100
)

// Rating holds a player's public-scale Glicko-2 state.
type Rating struct {
	Value      float64 // r, default 1500
	Deviation  float64 // RD, default 350
	Volatility float64 // sigma, default 0.06
}

// Opponent is one comparison the subject played during the rating period:
// the opponent's pre-period state plus the score from the subject's
// perspective (1 win, 0.5 draw, 0 loss).
type Opponent struct {
	Rating    float64
	Deviation float64
	Score     float64
}

func toInternal(r, rd float64) (mu, phi float64) {
	return (r - 1500.0) / scale, rd / scale
}

func fromInternal(mu, phi float64) (r, rd float64) {
	return mu*scale + 1500.0, phi * scale
}

// g dampens an opponent's influence by their uncertainty.
func g(phi float64) float64 {
	return 1.0 / math.Sqrt(1.0+3.0*phi*phi/(math.Pi*math.Pi))
}

// e is the expected score against an opponent at (muj, phij).
func e(mu, muj, phij float64) float64 {
	return 1.0 / (1.0 + math.Exp(-g(phij)*(mu-muj)))
}

// Update runs one Glicko-2 rating-period update for a player against the
// given opponents. With no opponents the deviation grows by one volatility
// step and rating and volatility are unchanged.
func Update(r Rating, opponents []Opponent) (Rating, error) {
	mu, phi := toInternal(r.Value, r.Deviation)

	if len(opponents) == 0 {
		phiStar := math.Sqrt(phi*phi + r.Volatility*r.Volatility)
		value, dev := fromInternal(mu, phiStar)
		return Rating{Value: value, Deviation: dev, Volatility: r.Volatility}, nil
	}

	// Estimated variance of the rating from opponent information, and the
	// estimated improvement delta.
	var vInv, scoreSum float64
	for _, opp := range opponents {
		muj, phij := toInternal(opp.Rating, opp.Deviation)
		gj := g(phij)
		ej := e(mu, muj, phij)
		vInv += gj * gj * ej * (1.0 - ej)
		scoreSum += gj * (opp.Score - ej)
	}
	v := 1.0 / vInv
	delta := v * scoreSum

	sigma, err := solveVolatility(phi, v, delta, r.Volatility)
	if err != nil {
		return Rating{}, err
	}

	phiStar := math.Sqrt(phi*phi + sigma*sigma)
	phiNew := 1.0 / math.Sqrt(1.0/(phiStar*phiStar)+1.0/v)
	muNew := mu + phiNew*phiNew*scoreSum

	value, dev := fromInternal(muNew, phiNew)
	return Rating{Value: value, Deviation: dev, Volatility: sigma}, nil
}

// solveVolatility finds the new volatility by the iterative procedure of the
// Glicko-2 paper (regula falsi with the Illinois modification on
// f(x) = 0 for x = ln(sigma'^2)).
func solveVolatility(phi, v, delta, sigma float64) (float64, error) {
	a := math.Log(sigma * sigma)
	f := func(x float64) float64 {
		ex := math.Exp(x)
		num := ex * (delta*delta - phi*phi - v - ex)
		den := 2.0 * (phi*phi + v + ex) * (phi*phi + v + ex)
		return num/den - (x-a)/(Tau*Tau)
	}

	lo := a
	var hi float64
	if delta*delta > phi*phi+v {
		hi = math.Log(delta*delta - phi*phi - v)
	} else {
		k := 1.0
		for f(a-k*Tau) < 0 {
			k++
			if k > maxIterations {
				return 0, model.ErrNoConvergence
			}
		}
		hi = a - k*Tau
	}

	fLo := f(lo)
	fHi := f(hi)
	for i := 0; math.Abs(lo-hi) > epsilon; i++ {
		if i >= maxIterations {
			return 0, model.ErrNoConvergence
		}
		mid := lo + (lo-hi)*fLo/(fHi-fLo)
		fMid := f(mid)
		if math.IsNaN(fMid) || math.IsInf(fMid, 0) {
			return 0, model.ErrNoConvergence
		}
		if fMid == 0 {
			return math.Exp(mid / 2.0), nil
		}
		if fMid*fHi < 0 {
			lo = hi
			fLo = fHi
		} else {
			fLo /= 2.0
		}
		hi = mid
		fHi = fMid
	}

	return math.Exp(lo / 2.0), nil
}

// WinProbability is a placeholder for a rating-based head-to-head
// predictor. It deliberately reports a coin flip until a calibrated model
// exists; callers must not treat the value as informative.
func WinProbability(a, b Rating) float64 {
	return 0.5
}
