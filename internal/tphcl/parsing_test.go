package tphcl

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blocksOf(t *testing.T, src string) hcl.Blocks {
	t.Helper()
	file, diags := hclsyntax.ParseConfig([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())

	content, _, diags := file.Body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{{Type: "retry"}, {Type: "cancellation"}},
	})
	require.False(t, diags.HasErrors(), diags.Error())
	return content.Blocks
}

func TestFindUniqueBlock(t *testing.T) {
	t.Parallel()

	t.Run("absent block returns nil without diagnostics", func(t *testing.T) {
		t.Parallel()
		block, diags := FindUniqueBlock(blocksOf(t, "cancellation {}\n"), "retry")

		assert.Nil(t, block)
		assert.False(t, diags.HasErrors())
	})

	t.Run("single block is returned", func(t *testing.T) {
		t.Parallel()
		block, diags := FindUniqueBlock(blocksOf(t, "retry {}\ncancellation {}\n"), "retry")

		require.NotNil(t, block)
		assert.Equal(t, "retry", block.Type)
		assert.False(t, diags.HasErrors())
	})

	t.Run("duplicate block is a diagnostic error", func(t *testing.T) {
		t.Parallel()
		_, diags := FindUniqueBlock(blocksOf(t, "retry {}\nretry {}\n"), "retry")

		require.True(t, diags.HasErrors())
		assert.Contains(t, diags.Error(), `Duplicate "retry" block`)
	})
}

func TestTraversalKey(t *testing.T) {
	t.Parallel()

	file, diags := hclsyntax.ParseConfig([]byte("v = foo.bar\n"), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	attrs, diags := file.Body.JustAttributes()
	require.False(t, diags.HasErrors(), diags.Error())

	vars := attrs["v"].Expr.Variables()
	require.Len(t, vars, 1)
	assert.Equal(t, "foo.bar", TraversalKey(vars[0]))
}
