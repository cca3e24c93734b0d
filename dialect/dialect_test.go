package dialect_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/shipyard"
	"github.com/syssam/shipyard/dialect"
	"github.com/syssam/shipyard/schema"
)

var errBoom = errors.New("boom")

// stub fails on objects named "Bad".
type stub struct{}

func (stub) BuildTable(t *schema.Table) (string, error) {
	if t.Name == "Bad" {
		return "", errBoom
	}
	return "table " + t.Name, nil
}

func (stub) BuildView(v *schema.View) (string, error) {
	if v.Name == "Bad" {
		return "", errBoom
	}
	return "view " + v.Name, nil
}

func (stub) NameConstraints(t *schema.Table) error {
	if t.Name == "Bad" {
		return errBoom
	}
	t.PrimaryKeyConstraintName = "PK_" + t.Name
	return nil
}

func (stub) CalculateAliases(v *schema.View) error {
	if v.Name == "Bad" {
		return errBoom
	}
	return dialect.CalculateAliases(v)
}

func (stub) CalculateJoinExpressions(v *schema.View) error {
	if v.Name == "Bad" {
		return errBoom
	}
	return nil
}

func TestBuildTables(t *testing.T) {
	out, err := dialect.BuildTables(stub{}, []*schema.Table{schema.NewTable("a", "One"), schema.NewTable("a", "Two")})
	require.NoError(t, err)
	assert.Equal(t, []string{"table One", "table Two"}, out)

	_, err = dialect.BuildTables(stub{}, []*schema.Table{schema.NewTable("a", "One"), schema.NewTable("a", "Bad")})
	require.Error(t, err)
	var oe *shipyard.ObjectError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, 1, oe.Index)
	assert.Equal(t, "a.Bad", oe.Object)
	assert.ErrorIs(t, err, errBoom)
}

func TestBuildViews(t *testing.T) {
	out, err := dialect.BuildViews(stub{}, []*schema.View{schema.NewView("r", "V")})
	require.NoError(t, err)
	assert.Equal(t, []string{"view V"}, out)

	_, err = dialect.BuildViews(stub{}, []*schema.View{schema.NewView("r", "Bad")})
	assert.ErrorIs(t, err, errBoom)
}

func TestNameAllConstraints(t *testing.T) {
	tables := []*schema.Table{schema.NewTable("a", "One"), schema.NewTable("a", "Two")}
	require.NoError(t, dialect.NameAllConstraints(stub{}, tables))
	assert.Equal(t, "PK_Two", tables[1].PrimaryKeyConstraintName)

	err := dialect.NameAllConstraints(stub{}, []*schema.Table{schema.NewTable("a", "Bad")})
	assert.ErrorIs(t, err, errBoom)
}

func TestCalculateAll(t *testing.T) {
	v := schema.NewView("r", "V")
	v.AddSource("HR", "Employee")
	require.NoError(t, dialect.CalculateAllAliases(stub{}, []*schema.View{v}))
	assert.Equal(t, "e", v.Sources[0].Alias)
	require.NoError(t, dialect.CalculateAllJoinExpressions(stub{}, []*schema.View{v}))

	bad := []*schema.View{v, schema.NewView("r", "Bad")}
	err := dialect.CalculateAllAliases(stub{}, bad)
	var oe *shipyard.ObjectError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, 1, oe.Index)
	assert.ErrorIs(t, dialect.CalculateAllJoinExpressions(stub{}, bad), errBoom)
}
