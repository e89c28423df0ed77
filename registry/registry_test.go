// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autonomy-network/registryd/account"
	"github.com/autonomy-network/registryd/fault"
	"github.com/autonomy-network/registryd/funds"
	"github.com/autonomy-network/registryd/pay"
	"github.com/autonomy-network/registryd/recurring"
	"github.com/autonomy-network/registryd/registry"
	"github.com/autonomy-network/registryd/stakes"
)

func TestCreateValidation(t *testing.T) {
	setup(t)
	defer teardown(t)

	target := &countingTarget{}
	table.Register(targetA, target)

	// recurring with input asset is malformed
	_, err := registry.CreateRequest(alice, registry.RequestInfo{
		Target:      targetA,
		IsRecurring: true,
		InputAsset:  &funds.Asset{Denom: "uusd", Amount: 5},
	}, nil)
	assert.Equal(t, fault.RecurringWithInputAsset, err, "recurring with input asset accepted")

	// non-recurring needs the exact fee
	_, err = registry.CreateRequest(alice, registry.RequestInfo{Target: targetA},
		funds.Attached{{Denom: feeDenom, Amount: feeAmount - 1}})
	assert.Equal(t, fault.InvalidFunds, err, "short fee accepted")

	// recurring must be prefunded
	_, err = registry.CreateRequest(alice, registry.RequestInfo{Target: targetA, IsRecurring: true}, nil)
	assert.Equal(t, fault.InsufficientRecurringFee, err, "unfunded recurring accepted")

	// recurring must not attach funds
	_, err = registry.CreateRequest(alice, registry.RequestInfo{Target: targetA, IsRecurring: true}, feeAttachment())
	assert.Equal(t, fault.InvalidFunds, err, "recurring with attached funds accepted")

	assert.Equal(t, uint64(0), registry.GetState().TotalRequests, "failed creations queued records")
}

func TestFeeEscrowRoundTrip(t *testing.T) {
	setup(t)
	defer teardown(t)

	before := ledger.Balance(alice, feeDenom)
	beforeState := registry.GetState()

	id, err := registry.CreateRequest(alice, registry.RequestInfo{Target: targetA, Msg: []byte("work")}, feeAttachment())
	assert.Nil(t, err, "create failed")
	assert.Equal(t, before-feeAmount, ledger.Balance(alice, feeDenom), "fee not escrowed")
	assert.Equal(t, beforeState.TotalRequests+1, registry.GetState().TotalRequests, "live count after create")

	err = registry.CancelRequest(alice, id)
	assert.Nil(t, err, "cancel failed")
	assert.Equal(t, before, ledger.Balance(alice, feeDenom), "escrow not returned exactly")
	assert.Equal(t, beforeState.TotalRequests, registry.GetState().TotalRequests, "live count after cancel")

	// a cancelled id reads back empty
	record := registry.GetRequest(id)
	assert.Equal(t, account.Nothing, record.Target, "cancelled id kept its target")
	assert.Equal(t, account.Nothing, record.Owner, "cancelled id kept its owner")
}

func TestCancelAuthorization(t *testing.T) {
	setup(t)
	defer teardown(t)

	id, err := registry.CreateRequest(alice, registry.RequestInfo{Target: targetA}, feeAttachment())
	assert.Nil(t, err, "create failed")

	err = registry.CancelRequest(executor, id)
	assert.Equal(t, fault.NotYourRequest, err, "foreign cancel accepted")

	err = registry.CancelRequest(alice, 999)
	assert.Equal(t, fault.RequestNotFound, err, "cancel of unknown id accepted")
}

func TestExecuteAuthorizationGate(t *testing.T) {
	setup(t)
	defer teardown(t)

	table.Register(targetA, &countingTarget{})

	id, err := registry.CreateRequest(alice, registry.RequestInfo{Target: targetA}, feeAttachment())
	assert.Nil(t, err, "create failed")

	// alice holds no stake
	err = registry.ExecuteRequest(alice, id)
	assert.Equal(t, fault.NotAnExecutor, err, "unstaked executor accepted")

	err = registry.ExecuteRequest(executor, 999)
	assert.Equal(t, fault.RequestNotFound, err, "unknown id executed")
}

func TestNonRecurringLifecycle(t *testing.T) {
	setup(t)
	defer teardown(t)

	target := &countingTarget{}
	table.Register(targetA, target)

	executorBefore := ledger.Balance(executor, feeDenom)

	id, err := registry.CreateRequest(alice, registry.RequestInfo{Target: targetA, Msg: []byte("work")}, feeAttachment())
	assert.Nil(t, err, "create failed")
	assert.Equal(t, uint64(1), registry.GetState().TotalRequests, "live count after create")

	err = registry.ExecuteRequest(executor, id)
	assert.Nil(t, err, "execute failed")
	assert.Equal(t, 1, target.calls, "target not called")
	assert.Equal(t, uint64(0), registry.GetState().TotalRequests, "completed request still live")
	assert.Equal(t, executorBefore+feeAmount, ledger.Balance(executor, feeDenom), "executor not paid")

	// completed ids are dead
	err = registry.ExecuteRequest(executor, id)
	assert.Equal(t, fault.RequestNotFound, err, "completed id executed again")
}

func TestDispatchFailureAtomicity(t *testing.T) {
	setup(t)
	defer teardown(t)

	target := &countingTarget{fail: true}
	table.Register(targetA, target)

	id, err := registry.CreateRequest(alice, registry.RequestInfo{Target: targetA}, feeAttachment())
	assert.Nil(t, err, "create failed")

	executorBefore := ledger.Balance(executor, feeDenom)
	stateBefore := registry.GetState()

	err = registry.ExecuteRequest(executor, id)
	assert.Equal(t, fault.TargetCallFailed, err, "failing dispatch reported success")

	// nothing from the attempt is retained
	assert.Equal(t, stateBefore.TotalRequests, registry.GetState().TotalRequests, "failed dispatch removed the request")
	assert.Equal(t, executorBefore, ledger.Balance(executor, feeDenom), "failed dispatch paid the executor")
	assert.NotEqual(t, account.Nothing, registry.GetRequest(id).Target, "request lost after failed dispatch")

	// still executable once the target recovers
	target.fail = false
	err = registry.ExecuteRequest(executor, id)
	assert.Nil(t, err, "execute after recovery failed")
}

func TestRecurringExhaustion(t *testing.T) {
	setup(t)
	defer teardown(t)

	target := &countingTarget{}
	table.Register(targetA, target)

	// prefund ten executions
	err := recurring.Deposit(alice, 10, funds.Attached{{Denom: feeDenom, Amount: 10 * feeAmount}})
	assert.Nil(t, err, "deposit failed")

	id, err := registry.CreateRequest(alice, registry.RequestInfo{Target: targetA, IsRecurring: true}, nil)
	assert.Nil(t, err, "create failed")

	for i := 0; i < 10; i += 1 {
		err = registry.ExecuteRequest(executor, id)
		assert.Nil(t, err, "execution %d failed", i)
		assert.Equal(t, uint64(10-i-1)*feeAmount, recurring.Balance(alice), "balance after execution %d", i)
		assert.Equal(t, uint64(1), registry.GetState().TotalRequests, "recurring request not re-armed after execution %d", i)
	}

	// the 11th execution starves the request
	err = registry.ExecuteRequest(executor, id)
	assert.Equal(t, fault.InsufficientRecurringFee, err, "exhausted balance not reported")
	assert.Equal(t, uint64(0), registry.GetState().TotalRequests, "starved request still live")

	// starvation is terminal
	err = registry.ExecuteRequest(executor, id)
	assert.Equal(t, fault.RequestNotFound, err, "starved id executed again")

	assert.Nil(t, registry.CheckConsistency(), "counters diverged")
}

func TestIdsNeverReused(t *testing.T) {
	setup(t)
	defer teardown(t)

	table.Register(targetA, &countingTarget{})

	id1, err := registry.CreateRequest(alice, registry.RequestInfo{Target: targetA}, feeAttachment())
	assert.Nil(t, err, "create failed")

	assert.Nil(t, registry.CancelRequest(alice, id1), "cancel failed")

	id2, err := registry.CreateRequest(alice, registry.RequestInfo{Target: targetA}, feeAttachment())
	assert.Nil(t, err, "create failed")
	assert.True(t, id2 > id1, "id reused after cancellation")
}

func TestInputAssetLifecycle(t *testing.T) {
	setup(t)
	defer teardown(t)

	input := funds.Asset{Denom: "uusd", Amount: 500}
	ledger.Issue(alice, input)

	target := &countingTarget{}
	table.Register(targetA, target)

	// escrow takes both the fee and the input asset
	id, err := registry.CreateRequest(alice, registry.RequestInfo{
		Target:     targetA,
		InputAsset: &input,
	}, funds.Attached{{Denom: feeDenom, Amount: feeAmount}, input})
	assert.Nil(t, err, "create failed")
	assert.Equal(t, uint64(0), ledger.Balance(alice, "uusd"), "input asset not escrowed")

	// cancellation returns both
	assert.Nil(t, registry.CancelRequest(alice, id), "cancel failed")
	assert.Equal(t, uint64(500), ledger.Balance(alice, "uusd"), "input asset not returned")

	// execution forwards the input asset to the target
	id, err = registry.CreateRequest(alice, registry.RequestInfo{
		Target:     targetA,
		InputAsset: &input,
	}, funds.Attached{{Denom: feeDenom, Amount: feeAmount}, input})
	assert.Nil(t, err, "create failed")

	assert.Nil(t, registry.ExecuteRequest(executor, id), "execute failed")
	assert.Equal(t, uint64(500), ledger.Balance(targetA, "uusd"), "input asset not settled to target")
}

func TestReentrantExecutionRejected(t *testing.T) {
	setup(t)
	defer teardown(t)

	// a target that tries to execute the very request being dispatched
	reentrant := reentrantTarget{}
	table.Register(targetA, &reentrant)

	id, err := registry.CreateRequest(alice, registry.RequestInfo{Target: targetA}, feeAttachment())
	assert.Nil(t, err, "create failed")
	reentrant.id = id
	reentrant.executor = executor

	err = registry.ExecuteRequest(executor, id)
	assert.Nil(t, err, "outer execution failed")
	assert.Equal(t, fault.RequestAlreadyExecuting, reentrant.innerErr, "nested execution of the same id accepted")
}

// target that re-enters the registry during dispatch
type reentrantTarget struct {
	id       uint64
	executor account.Account
	innerErr error
}

func (r *reentrantTarget) Handle(caller account.Account, msg []byte, attached *funds.Asset) error {
	r.innerErr = registry.ExecuteRequest(r.executor, r.id)
	return nil
}

// executing an unrelated request mid dispatch must not clear the
// in-flight mark on the request being dispatched
func TestReentrantExecutionRejectedAcrossRequests(t *testing.T) {
	setup(t)
	defer teardown(t)

	decoy := &countingTarget{}
	table.Register(targetA, decoy)

	detour := detourTarget{}
	table.Register(targetB, &detour)

	decoyId, err := registry.CreateRequest(alice, registry.RequestInfo{Target: targetA}, feeAttachment())
	assert.Nil(t, err, "create failed")

	id, err := registry.CreateRequest(alice, registry.RequestInfo{Target: targetB}, feeAttachment())
	assert.Nil(t, err, "create failed")

	detour.ownId = id
	detour.decoyId = decoyId
	detour.executor = executor

	executorBefore := ledger.Balance(executor, feeDenom)

	err = registry.ExecuteRequest(executor, id)
	assert.Nil(t, err, "outer execution failed")
	assert.Nil(t, detour.decoyErr, "nested execution of an unrelated request failed")
	assert.Equal(t, fault.RequestAlreadyExecuting, detour.retryErr, "in-flight id executed again")

	// one fee per dispatched request, the retry earned nothing
	assert.Equal(t, 1, decoy.calls, "unrelated request not dispatched once")
	assert.Equal(t, executorBefore+2*feeAmount, ledger.Balance(executor, feeDenom), "fee settled more than once per request")
	assert.Nil(t, registry.CheckConsistency(), "counters diverged")
}

// target that executes an unrelated request during dispatch and then
// retries the very request being dispatched
type detourTarget struct {
	ownId    uint64
	decoyId  uint64
	executor account.Account
	decoyErr error
	retryErr error
}

func (d *detourTarget) Handle(caller account.Account, msg []byte, attached *funds.Asset) error {
	d.decoyErr = registry.ExecuteRequest(d.executor, d.decoyId)
	d.retryErr = registry.ExecuteRequest(d.executor, d.ownId)
	return nil
}

// custody balances live only in the in-process ledger, after a restart
// they must be reseeded from the persisted records before any refund
// can settle
func TestCustodyReseedAfterRestart(t *testing.T) {
	setup(t)
	defer teardown(t)

	table.Register(targetA, &countingTarget{})

	input := funds.Asset{Denom: "uusd", Amount: 500}
	ledger.Issue(alice, input)

	assert.Nil(t, stakes.Deposit(alice, 2, funds.Attached{{Denom: stakeDenom, Amount: 2 * stakeAmount}}))
	assert.Nil(t, recurring.Deposit(alice, 3, funds.Attached{{Denom: feeDenom, Amount: 3 * feeAmount}}))

	id, err := registry.CreateRequest(alice, registry.RequestInfo{
		Target:     targetA,
		InputAsset: &input,
	}, funds.Attached{{Denom: feeDenom, Amount: feeAmount}, input})
	assert.Nil(t, err, "create failed")

	// restart: the records survive, the ledger does not
	recurring.Finalise()
	stakes.Finalise()
	registry.Finalise()

	ledger = pay.NewLedger()
	err = registry.Initialise(registry.Config{
		Owner:         owner,
		StakeDenom:    stakeDenom,
		StakeAmount:   stakeAmount,
		FeeDenom:      feeDenom,
		FeeAmount:     feeAmount,
		BlocksInEpoch: 100,
	}, custody, ledger, table)
	assert.Nil(t, err, "registry reinitialise failed")

	config, err := registry.EffectiveConfig()
	assert.Nil(t, err, "effective config failed")
	assert.Nil(t, stakes.Initialise(config.StakeDenom, config.StakeAmount, ledger, custody), "stakes reinitialise failed")
	assert.Nil(t, recurring.Initialise(config.FeeDenom, config.FeeAmount, ledger, custody), "recurring reinitialise failed")

	// the executor stake from setup, alice's two stakes, three prepaid
	// fees and the escrowed request fee share one denomination
	holdings, err := registry.CustodyRequirement()
	assert.Nil(t, err, "custody requirement failed")
	assert.Equal(t, []funds.Asset{
		{Denom: stakeDenom, Amount: 3*stakeAmount + 3*feeAmount + feeAmount},
		{Denom: "uusd", Amount: 500},
	}, holdings, "custody requirement")

	for _, holding := range holdings {
		ledger.Issue(custody, holding)
	}

	// every persisted claim settles again
	assert.Nil(t, stakes.Withdraw(alice, []uint64{2, 1}), "unstake after restart failed")
	assert.Nil(t, recurring.Withdraw(alice, 3), "fee withdraw after restart failed")
	assert.Nil(t, registry.CancelRequest(alice, id), "cancel after restart failed")

	assert.Equal(t, uint64(2*stakeAmount+3*feeAmount+feeAmount), ledger.Balance(alice, feeDenom), "refunds incomplete")
	assert.Equal(t, uint64(500), ledger.Balance(alice, "uusd"), "input asset not returned")

	// only the executor stake remains in custody
	assert.Equal(t, uint64(stakeAmount), ledger.Balance(custody, stakeDenom), "custody not drained to the live stake")
	assert.Equal(t, uint64(0), ledger.Balance(custody, "uusd"), "custody kept a settled input asset")
}

func TestBlacklist(t *testing.T) {
	setup(t)
	defer teardown(t)

	assert.Equal(t, fault.NotRegistryOwner, registry.AddToBlacklist(alice, targetA), "non owner blacklisted")

	assert.Nil(t, registry.AddToBlacklist(owner, targetA), "blacklist failed")
	assert.True(t, registry.IsBlacklisted(targetA), "blacklist not recorded")

	_, err := registry.CreateRequest(alice, registry.RequestInfo{Target: targetA}, feeAttachment())
	assert.Equal(t, fault.TargetBlacklisted, err, "blacklisted target accepted")

	assert.Equal(t, []account.Account{targetA}, registry.Blacklisted(), "blacklist query")

	assert.Nil(t, registry.RemoveFromBlacklist(owner, targetA), "blacklist lift failed")
	assert.False(t, registry.IsBlacklisted(targetA), "blacklist lift not recorded")

	table.Register(targetA, &countingTarget{})
	_, err = registry.CreateRequest(alice, registry.RequestInfo{Target: targetA}, feeAttachment())
	assert.Nil(t, err, "unblacklisted target rejected")
}
