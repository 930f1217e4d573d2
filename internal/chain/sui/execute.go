package sui

import (
	"context"
	"fmt"

	"github.com/mrz1836/suiwallet/internal/chain/sui/bcs"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// Execution statuses reported in effects.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// ExecuteResponse is the node's answer to a submitted transaction.
// Errors holds both node-reported errors and a failed execution status.
type ExecuteResponse struct {
	Digest string
	Status string
	Errors []string
}

type executeResult struct {
	Digest  string `json:"digest"`
	Effects *struct {
		Status struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		} `json:"status"`
	} `json:"effects"`
	Errors []string `json:"errors"`
}

// BuildTransaction attaches sender and gas to pt and returns the BCS bytes
// to sign. All of the sender's first page of SUI coins pay for gas so the
// gas coin can fund splits.
func (c *Client) BuildTransaction(ctx context.Context, sender Address, pt ProgrammableTransaction) ([]byte, error) {
	price, err := c.ReferenceGasPrice(ctx)
	if err != nil {
		return nil, err
	}

	coins, err := c.GetCoins(ctx, sender.String(), maxGasCoins)
	if err != nil {
		return nil, err
	}
	if len(coins) == 0 {
		return nil, walleterr.WithDetails(walleterr.ErrNoGasCoin, map[string]string{"address": sender.String()})
	}

	payment := make([]ObjectRef, len(coins))
	for i, coin := range coins {
		payment[i] = coin.Ref
	}

	data := TransactionData{
		Kind:   pt,
		Sender: sender,
		Gas: GasData{
			Payment: payment,
			Owner:   sender,
			Price:   price,
			Budget:  c.gasBudget,
		},
	}
	return bcs.Marshal(data), nil
}

// SignAndExecute builds pt for signer, signs it, and submits it, waiting
// for local execution. Submission is not retried.
func (c *Client) SignAndExecute(ctx context.Context, signer Signer, pt ProgrammableTransaction) (*ExecuteResponse, error) {
	sender, err := ParseAddress(signer.SuiAddress())
	if err != nil {
		return nil, err
	}

	txBytes, err := c.BuildTransaction(ctx, sender, pt)
	if err != nil {
		return nil, err
	}

	sig, err := SignTransaction(signer, txBytes)
	if err != nil {
		return nil, err
	}

	return c.ExecuteSigned(ctx, txBytes, sig)
}

// ExecuteSigned submits already-signed transaction bytes.
func (c *Client) ExecuteSigned(ctx context.Context, txBytes []byte, signature string) (*ExecuteResponse, error) {
	var res executeResult
	err := c.rpc.CallOnce(ctx, "sui_executeTransactionBlock", &res,
		encodeBase64(txBytes),
		[]string{signature},
		map[string]bool{"showEffects": true},
		"WaitForLocalExecution",
	)
	if err != nil {
		return nil, fmt.Errorf("executing transaction: %w", err)
	}

	resp := &ExecuteResponse{
		Digest: res.Digest,
		Errors: res.Errors,
	}
	if res.Effects != nil {
		resp.Status = res.Effects.Status.Status
		if resp.Status == StatusFailure {
			msg := res.Effects.Status.Error
			if msg == "" {
				msg = "execution failed"
			}
			resp.Errors = append(resp.Errors, msg)
		}
	}
	return resp, nil
}
