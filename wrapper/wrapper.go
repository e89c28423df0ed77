// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wrapper is a callable swap target for the request queue.
//
// It routes a fixed input amount through constant product pools and
// pays the realised output to the user, rejecting the call when the
// output falls outside the caller's declared bounds. It is one
// example of a dispatch target, the registry knows nothing about its
// payload schema.
package wrapper

import (
	"encoding/json"
	"math/big"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/funds"
	"github.com/autonomy-network/registryd/pay"
)

// Pool - one constant product pair
type Pool struct {
	DenomA   string `json:"denomA"`
	DenomB   string `json:"denomB"`
	ReserveA uint64 `json:"reserveA"`
	ReserveB uint64 `json:"reserveB"`
}

// SwapMsg - the wrapper's payload schema
//
// route names the pools to hop through in order, the output
// denomination follows from the input denomination and the route
type SwapMsg struct {
	User       account.Account `json:"user"`
	InputDenom string          `json:"inputDenom"`
	Amount     uint64          `json:"amount"`
	Route      []string        `json:"route"`
	MinOutput  uint64          `json:"minOutput"`
	MaxOutput  uint64          `json:"maxOutput"`
}

// payload envelope, the operation name keys the body
type payload struct {
	Swap *SwapMsg `json:"swap"`
}

// Wrapper - the swap target
type Wrapper struct {
	sync.Mutex
	log     *logger.L
	address account.Account
	mover   pay.Mover
	pools   map[string]*Pool
}

// New - a wrapper holding no pools
//
// the address is the account the wrapper trades from, it must be
// funded with pool reserves before swaps can pay out
func New(address account.Account, mover pay.Mover) *Wrapper {
	return &Wrapper{
		log:     logger.New("wrapper"),
		address: address,
		mover:   mover,
		pools:   make(map[string]*Pool),
	}
}

// Address - the account the wrapper trades from
func (w *Wrapper) Address() account.Account {
	return w.address
}

// AddLiquidity - create or top up a pool
//
// the funder pays both reserves into the wrapper's account
func (w *Wrapper) AddLiquidity(funder account.Account, name string, a funds.Asset, b funds.Asset) error {
	w.Lock()
	defer w.Unlock()

	if "" == name || a.Denom == b.Denom {
		return fault.InvalidDenomination
	}

	pool, ok := w.pools[name]
	if !ok {
		pool = &Pool{DenomA: a.Denom, DenomB: b.Denom}
		w.pools[name] = pool
	}
	if pool.DenomA != a.Denom || pool.DenomB != b.Denom {
		return fault.InvalidDenomination
	}

	err := w.mover.Move(funder, w.address, a)
	if nil != err {
		return err
	}
	err = w.mover.Move(funder, w.address, b)
	if nil != err {
		e := w.mover.Move(w.address, funder, a)
		logger.PanicIfError("wrapper: liquidity unwind", e)
		return err
	}

	pool.ReserveA += a.Amount
	pool.ReserveB += b.Amount

	w.log.Infof("liquidity: pool: %s  %d %s / %d %s", name, pool.ReserveA, pool.DenomA, pool.ReserveB, pool.DenomB)

	return nil
}

// PoolInfo - current reserves of a pool
func (w *Wrapper) PoolInfo(name string) (Pool, bool) {
	w.Lock()
	defer w.Unlock()

	pool, ok := w.pools[name]
	if !ok {
		return Pool{}, false
	}
	return *pool, true
}

// Handle - dispatch entry point
//
// an attached asset is the escrowed input settled by the registry,
// a direct call draws the input from the user's own balance
func (w *Wrapper) Handle(caller account.Account, msg []byte, attached *funds.Asset) error {
	var p payload
	err := json.Unmarshal(msg, &p)
	if nil != err || nil == p.Swap {
		return fault.NotSwapPayload
	}

	swap := *p.Swap
	if nil != attached {
		if attached.Denom != swap.InputDenom || attached.Amount != swap.Amount {
			return fault.InvalidFunds
		}
		return w.swap(swap, true)
	}
	return w.swap(swap, false)
}

// Swap - direct entry point for an account holding its own funds
func (w *Wrapper) Swap(swap SwapMsg) error {
	return w.swap(swap, false)
}

func (w *Wrapper) swap(swap SwapMsg, escrowed bool) error {
	w.Lock()
	defer w.Unlock()

	if swap.User.IsZero() || 0 == len(swap.Route) {
		return fault.MissingParameters
	}
	if 0 == swap.Amount {
		return fault.InvalidCount
	}
	if swap.MinOutput > swap.MaxOutput {
		return fault.MissingParameters
	}

	// walk the route without touching any state
	denom := swap.InputDenom
	amount := swap.Amount
	updated := make([]Pool, 0, len(swap.Route))
	for _, name := range swap.Route {
		pool, ok := w.pools[name]
		if !ok {
			return fault.UnknownSwapPool
		}
		next := *pool
		switch denom {
		case pool.DenomA:
			out := output(pool.ReserveA, pool.ReserveB, amount)
			next.ReserveA += amount
			next.ReserveB -= out
			denom = pool.DenomB
			amount = out
		case pool.DenomB:
			out := output(pool.ReserveB, pool.ReserveA, amount)
			next.ReserveB += amount
			next.ReserveA -= out
			denom = pool.DenomA
			amount = out
		default:
			return fault.InvalidDenomination
		}
		updated = append(updated, next)
	}

	// the input only moves for a direct call, an escrowed input was
	// already settled to the wrapper by the registry
	if !escrowed {
		err := w.mover.Move(swap.User, w.address, funds.Asset{
			Denom:  swap.InputDenom,
			Amount: swap.Amount,
		})
		if nil != err {
			return err
		}
	}

	// pay out, then verify the user's realised balance movement is
	// inside the declared bounds before keeping anything
	before := w.mover.Balance(swap.User, denom)
	err := w.mover.Move(w.address, swap.User, funds.Asset{
		Denom:  denom,
		Amount: amount,
	})
	if nil != err {
		if !escrowed {
			e := w.mover.Move(w.address, swap.User, funds.Asset{
				Denom:  swap.InputDenom,
				Amount: swap.Amount,
			})
			logger.PanicIfError("wrapper: input unwind", e)
		}
		return err
	}

	realised := w.mover.Balance(swap.User, denom) - before
	if realised < swap.MinOutput || realised > swap.MaxOutput {
		e := w.mover.Move(swap.User, w.address, funds.Asset{
			Denom:  denom,
			Amount: amount,
		})
		logger.PanicIfError("wrapper: output unwind", e)
		if !escrowed {
			e = w.mover.Move(w.address, swap.User, funds.Asset{
				Denom:  swap.InputDenom,
				Amount: swap.Amount,
			})
			logger.PanicIfError("wrapper: input unwind", e)
		}
		return fault.SlippageExceeded
	}

	// keep the reserve movements
	for i, name := range swap.Route {
		*w.pools[name] = updated[i]
	}

	w.log.Infof("swap: user: %s  %d %s -> %d %s", swap.User, swap.Amount, swap.InputDenom, realised, denom)

	return nil
}

// constant product output for a fixed input, rounded down
func output(reserveIn uint64, reserveOut uint64, amountIn uint64) uint64 {
	k := new(big.Int).Mul(new(big.Int).SetUint64(reserveIn), new(big.Int).SetUint64(reserveOut))
	newIn := new(big.Int).Add(new(big.Int).SetUint64(reserveIn), new(big.Int).SetUint64(amountIn))
	newOut := new(big.Int).Div(k, newIn)
	return reserveOut - newOut.Uint64()
}
