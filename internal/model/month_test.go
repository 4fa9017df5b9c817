package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMonthKey(t *testing.T) {
	assert.True(t, IsMonthKey("Feb-26"))
	assert.True(t, IsMonthKey("Dec-25"))
	assert.False(t, IsMonthKey("sku_code"))
	assert.False(t, IsMonthKey("Product_Name"))
	assert.False(t, IsMonthKey("February-26"))
	assert.False(t, IsMonthKey(""))
}

func TestMonthKeys_ChronologicalAcrossYears(t *testing.T) {
	header := []string{"sku_code", "Jan-27", "Brand_Group", "Nov-26", "Feb-26", "notes"}
	assert.Equal(t, []string{"Feb-26", "Nov-26", "Jan-27"}, MonthKeys(header))
}

func TestMonthKeys_NoMonthColumns(t *testing.T) {
	assert.Empty(t, MonthKeys([]string{"sku_code", "Stock_Qty"}))
	assert.Empty(t, MonthKeys(nil))
}
