package viewstate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bluelinehq/police-records-api/models"
)

func TestNavigatorStartsOnListAndRefetches(t *testing.T) {
	refetches := 0
	n := NewNavigator(func() { refetches++ })

	assert.Equal(t, ViewList, n.View())
	assert.Nil(t, n.Selected())
	assert.Equal(t, 1, refetches)
}

func TestNavigatorSelectAndBack(t *testing.T) {
	refetches := 0
	n := NewNavigator(func() { refetches++ })

	rec := models.Case{ID: 7, Title: "Burglary"}
	n.Select(rec)
	assert.Equal(t, ViewDetail, n.View())
	assert.Equal(t, rec, n.Selected())

	n.Back()
	assert.Equal(t, ViewList, n.View())
	assert.Nil(t, n.Selected())
	// construction plus the return to list
	assert.Equal(t, 2, refetches)
}

func TestNavigatorBackPastBottomIsNoOp(t *testing.T) {
	refetches := 0
	n := NewNavigator(func() { refetches++ })

	n.Back()
	n.Back()

	assert.Equal(t, ViewList, n.View())
	assert.Equal(t, 1, refetches)
}

func TestNavigatorEditRequiresSelection(t *testing.T) {
	n := NewNavigator(nil)

	n.Edit()
	assert.Equal(t, ViewList, n.View())

	n.Select(models.Case{ID: 1})
	n.Edit()
	assert.Equal(t, ViewEdit, n.View())
}

func TestNavigatorEditBackReturnsToDetail(t *testing.T) {
	n := NewNavigator(nil)

	rec := models.Case{ID: 1, Title: "Theft"}
	n.Select(rec)
	n.Edit()

	n.Back()
	assert.Equal(t, ViewDetail, n.View())
	assert.Equal(t, rec, n.Selected())

	n.Back()
	assert.Equal(t, ViewList, n.View())
}

func TestNavigatorEditSubmitSucceededLandsOnDetail(t *testing.T) {
	refetches := 0
	n := NewNavigator(func() { refetches++ })

	n.Select(models.Case{ID: 1, Title: "Theft", Status: "Open"})
	n.Edit()

	updated := models.Case{ID: 1, Title: "Theft", Status: "Closed"}
	n.SubmitSucceeded(updated)

	assert.Equal(t, ViewDetail, n.View())
	assert.Equal(t, updated, n.Selected())
	assert.NoError(t, n.Err())
	// no list entry yet, only the construction refetch
	assert.Equal(t, 1, refetches)

	// the edit step is gone from the history, so back goes to the list
	n.Back()
	assert.Equal(t, ViewList, n.View())
	assert.Nil(t, n.Selected())
	assert.Equal(t, 2, refetches)
}

func TestNavigatorCreateSubmitSucceededUnwindsToList(t *testing.T) {
	refetches := 0
	n := NewNavigator(func() { refetches++ })

	n.Create()
	n.SubmitSucceeded(models.Case{ID: 9, Title: "New case"})

	assert.Equal(t, ViewList, n.View())
	assert.Nil(t, n.Selected())
	assert.NoError(t, n.Err())
	assert.Equal(t, 2, refetches)

	// the history was cleared, so back stays put
	n.Back()
	assert.Equal(t, ViewList, n.View())
}

func TestNavigatorSubmitFailedKeepsFormState(t *testing.T) {
	n := NewNavigator(nil)

	rec := models.Case{ID: 1, Title: "Theft"}
	n.Select(rec)
	n.Edit()

	submitErr := errors.New("title is required")
	n.SubmitFailed(submitErr)

	assert.Equal(t, ViewEdit, n.View())
	assert.Equal(t, rec, n.Selected())
	assert.Equal(t, submitErr, n.Err())

	// a later transition clears the error
	n.Back()
	assert.NoError(t, n.Err())
}

func TestNavigatorCreate(t *testing.T) {
	n := NewNavigator(nil)

	n.Create()
	assert.Equal(t, ViewCreate, n.View())
	assert.Nil(t, n.Selected())

	n.Back()
	assert.Equal(t, ViewList, n.View())
}
