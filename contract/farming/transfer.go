package farming

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/meverselabs/boostfarm/common"
	"github.com/meverselabs/boostfarm/common/amount"
	"github.com/meverselabs/boostfarm/common/bin"
	"github.com/meverselabs/boostfarm/core/types"
)

// PendingWithdraw is the receipt of an in-flight reward payout. The
// reward is debited before the gateway call, so the receipt is what
// makes the debit reversible.
type PendingWithdraw struct {
	ID        uint64
	Farmer    common.Address
	Token     common.Address
	Amount    *amount.Amount
	CreatedAt uint64
}

func (pw *PendingWithdraw) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Uint64(w, pw.ID); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, pw.Farmer); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, pw.Token); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, pw.Amount); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, pw.CreatedAt); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (pw *PendingWithdraw) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Uint64(r, &pw.ID); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &pw.Farmer); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &pw.Token); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &pw.Amount); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &pw.CreatedAt); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

//////////////////////////////////////////////////
// Public Transfer Functions
//////////////////////////////////////////////////

// WithdrawReward sends the caller's reward balance of the token out
// through the transfer gateway. The balance is debited optimistically
// and a receipt is stored; the gateway reports the outcome through
// ResolveWithdraw.
func (cont *FarmingContract) WithdrawReward(cc *types.ContractContext, token common.Address, am *amount.Amount) (id uint64, err error) {
	sn := cc.Snapshot()
	defer func() {
		if err != nil {
			cc.Revert(sn)
		} else {
			cc.Commit(sn)
		}
	}()

	from := cc.From()
	if am == nil {
		// nil takes the whole balance
		am = cont.rewardBalance(cc, from, token)
	}
	if !am.IsPlus() {
		return 0, errors.WithStack(ErrInsufficientReward)
	}
	if err := cont.subFarmerReward(cc, from, token, am); err != nil {
		return 0, err
	}

	id = cont.nextWithdrawID(cc)
	pw := &PendingWithdraw{
		ID:        id,
		Farmer:    from,
		Token:     token,
		Amount:    am.Clone(),
		CreatedAt: cc.LastTimestamp(),
	}
	if err := cont.savePendingWithdraw(cc, pw); err != nil {
		return 0, err
	}
	if _, err := cc.Exec(cc, cont.TransferGateway(cc), "RequestTransfer", []interface{}{token, from, am}); err != nil {
		return 0, err
	}
	return id, nil
}

// ResolveWithdraw closes a receipt with the outcome of the transfer. On
// failure the debit is compensated: back onto the reward balance when
// the farmer still exists, onto the lost-and-found ledger when the
// farmer record was pruned in the meantime.
func (cont *FarmingContract) ResolveWithdraw(cc *types.ContractContext, id uint64, success bool) error {
	if cc.From() != cont.TransferGateway(cc) && !cont.isOwner(cc) {
		return errors.WithStack(ErrNotGateway)
	}
	pw := cont.loadPendingWithdraw(cc, id)
	if pw == nil {
		return errors.WithStack(ErrNotExistReceipt)
	}
	cont.deletePendingWithdraw(cc, id)
	if success {
		return nil
	}
	if cont.farmerExists(cc, pw.Farmer) {
		cont.addFarmerReward(cc, pw.Farmer, pw.Token, pw.Amount)
		return nil
	}
	bal := cont.LostFoundBalance(cc, pw.Farmer, pw.Token).Add(pw.Amount)
	cc.SetContractData(makeLostFoundKey(pw.Farmer, pw.Token), bal.Bytes())
	return nil
}

// WithdrawLostFound pays the caller's lost-and-found balance of the
// token out through the gateway. The transfer runs inside the call, so
// a gateway failure reverts the drain and the balance survives.
func (cont *FarmingContract) WithdrawLostFound(cc *types.ContractContext, token common.Address) (out *amount.Amount, err error) {
	sn := cc.Snapshot()
	defer func() {
		if err != nil {
			cc.Revert(sn)
		} else {
			cc.Commit(sn)
		}
	}()

	from := cc.From()
	bal := cont.LostFoundBalance(cc, from, token)
	if !bal.IsPlus() {
		return nil, errors.WithStack(ErrInsufficientBalance)
	}
	cc.SetContractData(makeLostFoundKey(from, token), nil)
	if _, err := cc.Exec(cc, cont.TransferGateway(cc), "RequestTransfer", []interface{}{token, from, bal}); err != nil {
		return nil, err
	}
	return bal, nil
}

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

func (cont *FarmingContract) nextWithdrawID(cc *types.ContractContext) uint64 {
	var seq uint64
	if bs := cc.ContractData([]byte{tagWithdrawSeq}); len(bs) == 8 {
		seq = bin.Uint64(bs)
	}
	seq++
	cc.SetContractData([]byte{tagWithdrawSeq}, bin.Uint64Bytes(seq))
	return seq
}

func (cont *FarmingContract) loadPendingWithdraw(cc *types.ContractContext, id uint64) *PendingWithdraw {
	bs := cc.ContractData(makePendingWithdrawKey(id))
	if len(bs) == 0 {
		return nil
	}
	pw := &PendingWithdraw{}
	if _, err := pw.ReadFrom(bytes.NewReader(bs)); err != nil {
		return nil
	}
	return pw
}

func (cont *FarmingContract) savePendingWithdraw(cc *types.ContractContext, pw *PendingWithdraw) error {
	var buffer bytes.Buffer
	if _, err := pw.WriteTo(&buffer); err != nil {
		return err
	}
	cc.SetContractData(makePendingWithdrawKey(pw.ID), buffer.Bytes())
	return nil
}

func (cont *FarmingContract) deletePendingWithdraw(cc *types.ContractContext, id uint64) {
	cc.SetContractData(makePendingWithdrawKey(id), nil)
}
