package pim_test

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pim "github.com/llehouerou/go-pim-client"
)

func TestViewTemplateInput_Validate(t *testing.T) {
	require.NoError(t, validTemplate().Validate())

	in := pim.ViewTemplateInput{
		Sections: []pim.Section{
			{
				Attributes: []pim.Attribute{
					{Name: "Weight", Type: pim.AttributeNumber},
					{Type: "color"},
					{Name: "Kind"},
				},
			},
		},
	}
	err := in.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	var msgs []string
	for _, e := range merr.Errors {
		msgs = append(msgs, e.Error())
	}
	assert.Equal(t, []string{
		"name is required",
		"section 1: title is required",
		"section 1 attribute 2: name is required",
		`section 1 attribute 2: unknown type "color"`,
		"section 1 attribute 3: type is required",
	}, msgs)
}

func TestAttributeType_Valid(t *testing.T) {
	for _, typ := range []pim.AttributeType{
		pim.AttributeText, pim.AttributeTextarea, pim.AttributeNumber,
		pim.AttributeBoolean, pim.AttributeDate, pim.AttributePicklist,
	} {
		assert.True(t, typ.Valid(), typ)
	}
	assert.False(t, pim.AttributeType("").Valid())
	assert.False(t, pim.AttributeType("Text").Valid())
}

func sectionTitles(tpl pim.ViewTemplate) ([]string, []int) {
	var titles []string
	var orders []int
	for _, s := range tpl.Sections {
		titles = append(titles, s.Title)
		orders = append(orders, s.Order)
	}
	return titles, orders
}

func TestViewTemplate_MoveSection(t *testing.T) {
	tpl := pim.ViewTemplate{Sections: []pim.Section{
		{Title: "A", Order: 5}, {Title: "B", Order: 9}, {Title: "C"}, {Title: "D"},
	}}

	require.NoError(t, tpl.MoveSection(0, 2))
	titles, orders := sectionTitles(tpl)
	assert.Equal(t, []string{"B", "C", "A", "D"}, titles)
	assert.Equal(t, []int{1, 2, 3, 4}, orders)

	require.NoError(t, tpl.MoveSection(3, 0))
	titles, _ = sectionTitles(tpl)
	assert.Equal(t, []string{"D", "B", "C", "A"}, titles)

	require.NoError(t, tpl.MoveSection(1, 1))
	titles, _ = sectionTitles(tpl)
	assert.Equal(t, []string{"D", "B", "C", "A"}, titles)

	assert.Error(t, tpl.MoveSection(-1, 0))
	assert.Error(t, tpl.MoveSection(0, 4))
}

func TestSection_MoveAttribute(t *testing.T) {
	s := pim.Section{Attributes: []pim.Attribute{{Name: "x"}, {Name: "y"}, {Name: "z"}}}

	require.NoError(t, s.MoveAttribute(2, 0))
	var names []string
	for i, a := range s.Attributes {
		names = append(names, a.Name)
		assert.Equal(t, i+1, a.Order)
	}
	assert.Equal(t, []string{"z", "x", "y"}, names)

	err := s.MoveAttribute(3, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "move attribute: index 3 out of range [0,3)")
}

func TestViewTemplate_Input(t *testing.T) {
	tpl := pim.ViewTemplate{
		ID:        "t1",
		Name:      "Default",
		IsDefault: true,
		Sections:  []pim.Section{{Title: "General"}},
		CreatedAt: "2026-01-01",
	}
	in := tpl.Input()
	assert.Equal(t, "t1", in.ID)
	assert.Equal(t, "Default", in.Name)
	assert.True(t, in.IsDefault)
	assert.Equal(t, tpl.Sections, in.Sections)
}
