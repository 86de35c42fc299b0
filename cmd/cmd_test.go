package cmd

import (
	"net/http/httptest"
	"testing"

	"stock-checker/core/config"
	"stock-checker/core/database"
	"stock-checker/core/middleware/rayid"
	"stock-checker/core/reconcile"
	"stock-checker/core/tableio"

	"github.com/gofiber/fiber/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testPass(t *testing.T) *pass {
	t.Helper()
	local := &tableio.Table{
		Headers: []string{"code", "name", "defaultCategory", "stock", "productVisibility", "variant:Objem"},
		Rows: [][]string{
			{"10", "Hot Chocolate", "Drinks", "0", "hidden", ""},
			{"11", "Hot Chocolate", "Mix-your-own gift box", "0", "hidden", "objem 1"},
			{"12", "Ghost", "Drinks", "3", "visible", ""},
			{"12", "Ghost twin", "Drinks", "3", "visible", ""},
			{"86827", "Pinned", "Drinks", "1", "visible", ""},
		},
	}
	supplier := []reconcile.SupplierRow{
		{Code: "10", Name: "Hot Chocolate (kód: 10)", Stock: 6},
		{Code: "99", Name: "Something", Stock: 1},
		{Code: "99", Name: "Else", Stock: 2},
	}

	rows, layout := tableio.LocalRows(local)
	require.Len(t, rows, 5)
	return &pass{
		local:  local,
		layout: layout,
		before: rows,
		result: reconcile.Run(rows, supplier, reconcile.DefaultOptions()),
	}
}

func TestFindProducts_ByName(t *testing.T) {
	details := findProducts(testPass(t), reconcile.DefaultOptions(), "hot chocolate (kód: 1)")
	require.Len(t, details, 2)

	base := details[0]
	assert.Equal(t, "code", base.MatchedBy)
	assert.Equal(t, 6, base.SupplierStock)
	assert.Equal(t, 0, base.StockBefore)
	assert.Equal(t, 6, base.StockAfter)
	assert.Equal(t, "visible", base.VisibilityAfter)
	assert.False(t, base.Bundle)
	assert.Equal(t, 2, base.Threshold)

	box := details[1]
	assert.True(t, box.Bundle)
	assert.Equal(t, reconcile.SizeLarge, box.SizeClass)
	assert.Equal(t, 2, box.Threshold)
	assert.Equal(t, "name", box.MatchedBy)
	assert.Equal(t, 6, box.StockAfter)
	assert.Equal(t, "visible", box.VisibilityAfter)
}

func TestFindProducts_ByCode(t *testing.T) {
	p := testPass(t)
	opts := reconcile.DefaultOptions()

	details := findProducts(p, opts, " 12 ")
	require.Len(t, details, 2)
	for _, d := range details {
		assert.Equal(t, "none", d.MatchedBy)
		assert.True(t, d.Missing)
		assert.Equal(t, "hidden", d.VisibilityAfter)
	}

	details = findProducts(p, opts, "86827")
	require.Len(t, details, 1)
	assert.Equal(t, "ignored", details[0].MatchedBy)
	assert.Equal(t, "visible", details[0].VisibilityAfter)

	assert.Empty(t, findProducts(p, opts, "nothing like it"))
}

func TestSummarizeCheck(t *testing.T) {
	s := summarizeCheck(testPass(t))

	assert.Equal(t, "FAIL", s.Status)
	assert.Equal(t, 5, s.Rows)
	assert.Equal(t, 2, s.SupplierCodes)
	assert.Equal(t, 3, s.SupplierNames)
	assert.Len(t, s.Missing, 1)
	assert.Len(t, s.MissingExcludingBundles, 2)
	assert.Len(t, s.UnmatchedByCode, 2)
	assert.Len(t, s.DuplicateCodes, 2)
	require.Len(t, s.SupplierCollisions, 1)
	assert.Equal(t, "99", s.SupplierCollisions[0].Key)
}

func TestSession_Resolve(t *testing.T) {
	s := &session{cfg: testConfig()}
	assert.Equal(t, "db://products", s.resolve("db://"))
	assert.Equal(t, "db://other", s.resolve("db://other"))
	assert.Equal(t, "export.xlsx", s.resolve("export.xlsx"))
}

func testConfig() *config.Config {
	return &config.Config{Database: database.Config{Table: "products"}}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	app := fiber.New()
	app.Use(rayid.New())
	app.Use(requestLogger(zap.New(core)))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusTeapot) })

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	entries := logs.FilterMessage("Request handled").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/ping", fields["path"])
	assert.Equal(t, int64(fiber.StatusTeapot), fields["status"])
	assert.Equal(t, resp.Header.Get(rayid.Header), fields["ray_id"])
}
