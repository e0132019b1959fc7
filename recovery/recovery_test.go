package recovery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"sharerecovery/basedecoder"
	"sharerecovery/casefile"
	"sharerecovery/lagrange"
	"sharerecovery/logging"
	"sharerecovery/secretsharing"
	test "sharerecovery/testing"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, opts ...Option) *Runner {
	opts = append([]Option{WithLogger(logging.NewLogger(io.Discard, "test"))}, opts...)
	r, err := NewRunner(opts...)
	require.NoError(t, err)
	return r
}

func writeCase(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)
	return path
}

// TestRecovery_Run checks that a broken case does not prevent the others
// from being recovered and that results keep the input order
func TestRecovery_Run(t *testing.T) {
	dir := t.TempDir()
	good := writeCase(t, dir, "good.json", `{
		"keys": {"n": 4, "k": 3},
		"1": {"base": "10", "value": "4"},
		"2": {"base": "2", "value": "111"},
		"3": {"base": "10", "value": "12"},
		"4": {"base": "16", "value": "13"}
	}`)
	badDigit := writeCase(t, dir, "bad_digit.json", `{
		"keys": {"n": 2, "k": 2},
		"1": {"base": "2", "value": "4"},
		"2": {"base": "10", "value": "7"}
	}`)
	missing := filepath.Join(dir, "missing.json")
	tooFew := writeCase(t, dir, "too_few.json", `{
		"keys": {"n": 3, "k": 3},
		"1": {"base": "10", "value": "4"}
	}`)

	r := newTestRunner(t, WithWorkers(2))
	results := r.Run(context.Background(), []string{good, badDigit, missing, tooFew, good})
	require.Len(t, results, 5)

	require.Equal(t, good, results[0].Path)
	require.NoError(t, results[0].Err)
	require.Equal(t, int64(3), results[0].Secret.Int64())

	require.True(t, errors.Is(results[1].Err, basedecoder.ErrInvalidDigit))
	require.Nil(t, results[1].Secret)

	require.True(t, errors.Is(results[2].Err, os.ErrNotExist))

	require.True(t, errors.Is(results[3].Err, secretsharing.ErrMalformedShareCount))

	require.NoError(t, results[4].Err)
	require.Equal(t, int64(3), results[4].Secret.Int64())
}

// TestRecovery_ManyCases recovers random secrets from many binary cases
func TestRecovery_ManyCases(t *testing.T) {
	dir := t.TempDir()
	modulus := lagrange.DefaultModulus()

	nbCases := 20
	paths := make([]string, nbCases)
	secrets := make([]*big.Int, nbCases)
	for i := 0; i < nbCases; i++ {
		k := 1 + i%5
		n := k + 2
		dealer := test.NewDealer(modulus, k)
		secrets[i] = dealer.Secret()

		c := secretsharing.Case{N: n, K: k}
		for x := int64(1); x <= int64(n); x++ {
			c.Shares = append(c.Shares, secretsharing.NewShare(x, 36, dealer.Eval(x).Text(36)))
		}

		paths[i] = filepath.Join(dir, fmt.Sprintf("case%d%s", i, casefile.BinaryExt))
		require.NoError(t, casefile.Save(paths[i], c))
	}

	r := newTestRunner(t, WithWorkers(4))
	results := r.Run(context.Background(), paths)
	for i, res := range results {
		require.NoError(t, res.Err)
		require.Equal(t, 0, secrets[i].Cmp(res.Secret), "case %d", i)
	}
}

func TestRecovery_NoShareSelection(t *testing.T) {
	c := secretsharing.Case{
		N: 3,
		K: 2,
		Shares: []secretsharing.Share{
			secretsharing.NewShare(1, 10, "4"),
			secretsharing.NewShare(2, 10, "7"),
			secretsharing.NewShare(3, 10, "12"),
		},
	}

	strict := newTestRunner(t, WithShareSelection(false))
	_, err := strict.RecoverCase(c)
	require.True(t, errors.Is(err, secretsharing.ErrMalformedShareCount))

	// Line through (1, 4) and (2, 7)
	lenient := newTestRunner(t)
	secret, err := lenient.RecoverCase(c)
	require.NoError(t, err)
	require.Equal(t, int64(1), secret.Int64())
}

func TestRecovery_CustomModulus(t *testing.T) {
	modulus := big.NewInt(101)
	r := newTestRunner(t, WithModulus(modulus))

	c := secretsharing.Case{
		N: 2,
		K: 2,
		Shares: []secretsharing.Share{
			secretsharing.NewShare(1, 10, "150"),
			secretsharing.NewShare(2, 10, "300"),
		},
	}
	// 150 = 49 and 300 = 98 mod 101, on the line 49x: secret 0
	secret, err := r.RecoverCase(c)
	require.NoError(t, err)
	require.Equal(t, int64(0), secret.Int64())

	_, err = NewRunner(WithModulus(big.NewInt(100)))
	require.True(t, errors.Is(err, lagrange.ErrInvalidModulus))
}

func TestRecovery_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newTestRunner(t)
	results := r.Run(ctx, []string{"a.json", "b.json"})
	for _, res := range results {
		require.True(t, errors.Is(res.Err, context.Canceled))
	}
}
