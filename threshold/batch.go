package threshold

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/zipevo/bls-signatures/bls"
)

// PrivateKeyShares evaluates PrivateKeyShare for every ID concurrently.
// The result is in ID order.
func PrivateKeyShares(keys []*bls.PrivateKey, ids [][]byte) ([]*bls.PrivateKey, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no IDs provided", bls.ErrInputShape)
	}
	out := make([]*bls.PrivateKey, len(ids))
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, id := range ids {
		eg.Go(func() error {
			share, err := PrivateKeyShare(keys, id)
			if err != nil {
				return err
			}
			out[i] = share
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// PublicKeyShares evaluates PublicKeyShare for every ID concurrently.
// The result is in ID order.
func PublicKeyShares(keys []*bls.PublicKey, ids [][]byte) ([]*bls.PublicKey, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no IDs provided", bls.ErrInputShape)
	}
	out := make([]*bls.PublicKey, len(ids))
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, id := range ids {
		eg.Go(func() error {
			share, err := PublicKeyShare(keys, id)
			if err != nil {
				return err
			}
			out[i] = share
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
