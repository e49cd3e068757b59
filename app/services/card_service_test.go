package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cardsapi/app/apperrors"
	"cardsapi/app/dto"
	"cardsapi/app/models"
	"cardsapi/app/query"
	"cardsapi/app/repo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	member1 = models.Actor{Email: "m1@co.com", Role: models.RoleMember}
	member2 = models.Actor{Email: "m2@co.com", Role: models.RoleMember}
	admin   = models.Actor{Email: "boss@co.com", Role: models.RoleAdmin}
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Card{}))
	return gdb
}

func newCardService(t *testing.T) *CardService {
	t.Helper()
	return NewCardService(repo.NewCardRepository(newTestDB(t)))
}

func mustParams(t *testing.T, page, pageSize int, sortField string, order query.SortOrder, filters map[string]string) query.Params {
	t.Helper()
	params, err := query.NewParams(page, pageSize, sortField, order, filters)
	require.NoError(t, err)
	return params
}

func TestCreateCard_ForcesTodoAndSetsAuditFields(t *testing.T) {
	svc := newCardService(t)
	before := time.Now()

	card, err := svc.CreateCard(context.Background(), member1, dto.CardRequest{
		Name:   "Standup",
		Color:  "#5A91B0",
		Status: "DONE", // must be ignored
	})
	require.NoError(t, err)

	assert.NotZero(t, card.ID)
	assert.Equal(t, models.StatusTodo, card.Status)
	assert.Equal(t, member1.Email, card.CreatedBy)
	assert.Equal(t, member1.Email, card.LastModifiedBy)
	assert.False(t, card.CreatedDateTime.Before(before))
}

func TestCreateCard_BlankName(t *testing.T) {
	svc := newCardService(t)
	_, err := svc.CreateCard(context.Background(), member1, dto.CardRequest{Name: "   "})
	assert.ErrorIs(t, err, apperrors.ErrCardNameNotProvided)
}

func TestCreateCard_CollectsAllViolations(t *testing.T) {
	svc := newCardService(t)
	longName := make([]byte, 51)
	for i := range longName {
		longName[i] = 'x'
	}
	_, err := svc.CreateCard(context.Background(), member1, dto.CardRequest{
		Name:  string(longName),
		Color: "red",
	})
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 2)
}

func TestGetCard_RoundTrip(t *testing.T) {
	svc := newCardService(t)
	created, err := svc.CreateCard(context.Background(), member1, dto.CardRequest{
		Name:        "Standup",
		Description: "Daily sync",
		Color:       "#5A91B0",
	})
	require.NoError(t, err)

	got, err := svc.GetCard(context.Background(), member1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standup", got.Name)
	assert.Equal(t, "Daily sync", got.Description)
	assert.Equal(t, "#5A91B0", got.Color)
	assert.Equal(t, models.StatusTodo, got.Status)
}

func TestGetCard_NotFound(t *testing.T) {
	svc := newCardService(t)
	_, err := svc.GetCard(context.Background(), member1, 42)
	var nf *apperrors.CardNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, uint(42), nf.ID)
}

func TestGetCard_AccessGate(t *testing.T) {
	svc := newCardService(t)
	created, err := svc.CreateCard(context.Background(), member1, dto.CardRequest{Name: "Standup"})
	require.NoError(t, err)

	// Another member is told forbidden, not not-found.
	_, err = svc.GetCard(context.Background(), member2, created.ID)
	var forbidden *apperrors.InsufficientPrivilegesError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, member2.Email, forbidden.Email)

	// Admins see everything.
	got, err := svc.GetCard(context.Background(), admin, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standup", got.Name)
}

func TestReplaceCard_PreservesCreationAudit(t *testing.T) {
	svc := newCardService(t)
	creationTime := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return creationTime }
	created, err := svc.CreateCard(context.Background(), member1, dto.CardRequest{Name: "Standup", Color: "#5A91B0"})
	require.NoError(t, err)

	replaceTime := creationTime.Add(48 * time.Hour)
	svc.now = func() time.Time { return replaceTime }
	replaced, err := svc.ReplaceCard(context.Background(), admin, created.ID, dto.CardRequest{
		Name:   "Retro",
		Status: "IN_PROGRESS",
	})
	require.NoError(t, err)

	assert.Equal(t, "Retro", replaced.Name)
	assert.Equal(t, models.StatusInProgress, replaced.Status)
	// Full replacement clears fields that were not resupplied.
	assert.Empty(t, replaced.Color)
	// Creation audit survives; modification audit moves to the actor.
	assert.Equal(t, member1.Email, replaced.CreatedBy)
	assert.True(t, replaced.CreatedDateTime.Equal(creationTime))
	assert.Equal(t, admin.Email, replaced.LastModifiedBy)
	assert.True(t, replaced.LastModifiedDateTime.Equal(replaceTime))
}

func TestReplaceCard_StatusDefaultsToTodo(t *testing.T) {
	svc := newCardService(t)
	created, err := svc.CreateCard(context.Background(), member1, dto.CardRequest{Name: "Standup"})
	require.NoError(t, err)

	_, err = svc.UpdateCard(context.Background(), member1, created.ID, dto.CardPatch{Status: strptr("DONE")})
	require.NoError(t, err)

	replaced, err := svc.ReplaceCard(context.Background(), member1, created.ID, dto.CardRequest{Name: "Standup"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusTodo, replaced.Status)
}

func TestReplaceCard_BlankName(t *testing.T) {
	svc := newCardService(t)
	created, err := svc.CreateCard(context.Background(), member1, dto.CardRequest{Name: "Standup"})
	require.NoError(t, err)

	_, err = svc.ReplaceCard(context.Background(), member1, created.ID, dto.CardRequest{Name: " "})
	assert.ErrorIs(t, err, apperrors.ErrCardNameNotProvided)
}

func TestUpdateCard_SparseSemantics(t *testing.T) {
	svc := newCardService(t)
	created, err := svc.CreateCard(context.Background(), member1, dto.CardRequest{
		Name:        "Standup",
		Description: "Daily sync",
		Color:       "#5A91B0",
	})
	require.NoError(t, err)

	// nil fields stay untouched; explicit empty string clears color.
	updated, err := svc.UpdateCard(context.Background(), member1, created.ID, dto.CardPatch{
		Color:  strptr(""),
		Status: strptr("DONE"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Standup", updated.Name)
	assert.Equal(t, "Daily sync", updated.Description)
	assert.Empty(t, updated.Color)
	assert.Equal(t, models.StatusDone, updated.Status)
	assert.Equal(t, member1.Email, updated.CreatedBy)
	assert.True(t, updated.CreatedDateTime.Equal(created.CreatedDateTime))
}

func TestUpdateCard_BlankNameRejected(t *testing.T) {
	svc := newCardService(t)
	created, err := svc.CreateCard(context.Background(), member1, dto.CardRequest{Name: "Standup"})
	require.NoError(t, err)

	_, err = svc.UpdateCard(context.Background(), member1, created.ID, dto.CardPatch{Name: strptr("   ")})
	assert.ErrorIs(t, err, apperrors.ErrCardNameBlank)
}

func TestUpdateCard_BadStatus(t *testing.T) {
	svc := newCardService(t)
	created, err := svc.CreateCard(context.Background(), member1, dto.CardRequest{Name: "Standup"})
	require.NoError(t, err)

	_, err = svc.UpdateCard(context.Background(), member1, created.ID, dto.CardPatch{Status: strptr("SHIPPED")})
	var verr *apperrors.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDeleteCard_HardDelete(t *testing.T) {
	svc := newCardService(t)
	created, err := svc.CreateCard(context.Background(), member1, dto.CardRequest{Name: "Standup"})
	require.NoError(t, err)

	// Other members may not delete it.
	var forbidden *apperrors.InsufficientPrivilegesError
	require.ErrorAs(t, svc.DeleteCard(context.Background(), member2, created.ID), &forbidden)

	require.NoError(t, svc.DeleteCard(context.Background(), member1, created.ID))

	_, err = svc.GetCard(context.Background(), member1, created.ID)
	var nf *apperrors.CardNotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestAggregateGet_MemberScopedToOwnCards(t *testing.T) {
	svc := newCardService(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := svc.CreateCard(ctx, member1, dto.CardRequest{Name: fmt.Sprintf("mine-%d", i)})
		require.NoError(t, err)
	}
	for i := 0; i < 15; i++ {
		_, err := svc.CreateCard(ctx, member2, dto.CardRequest{Name: fmt.Sprintf("other-%d", i)})
		require.NoError(t, err)
	}

	// With a created_by filter for themselves: exactly their 5 cards.
	params := mustParams(t, 0, 10, "id", query.SortAsc, map[string]string{models.FilterCreatedBy: member1.Email})
	cards, err := svc.GetCardsByFilter(ctx, member1, params)
	require.NoError(t, err)
	assert.Len(t, cards, 5)
	for _, c := range cards {
		assert.Equal(t, member1.Email, c.CreatedBy)
	}

	// Without any filter the implicit ownership predicate still applies.
	params = mustParams(t, 0, 20, "id", query.SortAsc, nil)
	cards, err = svc.GetCardsByFilter(ctx, member1, params)
	require.NoError(t, err)
	assert.Len(t, cards, 5)

	// Filtering by someone else's identity is rejected before querying.
	params = mustParams(t, 0, 10, "id", query.SortAsc, map[string]string{models.FilterCreatedBy: member2.Email})
	_, err = svc.GetCardsByFilter(ctx, member1, params)
	var forbidden *apperrors.InsufficientPrivilegesError
	assert.ErrorAs(t, err, &forbidden)

	// Admins may filter by anyone.
	cards, err = svc.GetCardsByFilter(ctx, admin, params)
	require.NoError(t, err)
	assert.Len(t, cards, 10)
}

func TestAggregateGet_PaginationReproducesFullSet(t *testing.T) {
	svc := newCardService(t)
	ctx := context.Background()
	const total, pageSize = 12, 5
	for i := 0; i < total; i++ {
		_, err := svc.CreateCard(ctx, member1, dto.CardRequest{Name: fmt.Sprintf("card-%02d", i)})
		require.NoError(t, err)
	}

	seen := map[uint]bool{}
	var lastID uint
	wantSizes := []int{5, 5, 2}
	for page, want := range wantSizes {
		params := mustParams(t, page, pageSize, "id", query.SortAsc, nil)
		cards, err := svc.GetCardsByFilter(ctx, member1, params)
		require.NoError(t, err)
		assert.Len(t, cards, want, "page %d", page)
		for _, c := range cards {
			assert.False(t, seen[c.ID], "duplicate id %d", c.ID)
			seen[c.ID] = true
			assert.Greater(t, c.ID, lastID, "ascending id order across pages")
			lastID = c.ID
		}
	}
	assert.Len(t, seen, total)
}

func TestAggregateGet_SortDescending(t *testing.T) {
	svc := newCardService(t)
	ctx := context.Background()
	for _, name := range []string{"alpha", "delta", "bravo", "charlie"} {
		_, err := svc.CreateCard(ctx, member1, dto.CardRequest{Name: name})
		require.NoError(t, err)
	}

	params := mustParams(t, 0, 10, "name", query.SortDesc, nil)
	cards, err := svc.GetCardsByFilter(ctx, member1, params)
	require.NoError(t, err)
	require.Len(t, cards, 4)
	for i := 1; i < len(cards); i++ {
		assert.GreaterOrEqual(t, cards[i-1].Name, cards[i].Name)
	}
}

func TestAggregateGet_DateRangeFilter(t *testing.T) {
	svc := newCardService(t)
	ctx := context.Background()

	// Cards are stamped with time.Now(), a local-time instant; the filter
	// literals must match them by wall clock whatever the host zone is.
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		created := base.AddDate(0, 0, i)
		svc.now = func() time.Time { return created }
		_, err := svc.CreateCard(ctx, member1, dto.CardRequest{Name: fmt.Sprintf("day-%d", i)})
		require.NoError(t, err)
	}

	params := mustParams(t, 0, 10, "id", query.SortAsc, map[string]string{
		models.FilterBeginDate: "02/06/2024 00:00:00.000",
		models.FilterEndDate:   "02/06/2024 23:59:59.999",
	})
	cards, err := svc.GetCardsByFilter(ctx, member1, params)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "day-1", cards[0].Name)
}

func TestAggregateGet_DateFilterMatchesWallClock(t *testing.T) {
	svc := newCardService(t)
	ctx := context.Background()

	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local) }
	_, err := svc.CreateCard(ctx, member1, dto.CardRequest{Name: "noon"})
	require.NoError(t, err)

	inRange := mustParams(t, 0, 10, "id", query.SortAsc, map[string]string{
		models.FilterBeginDate: "01/06/2024 10:00:00.000",
		models.FilterEndDate:   "01/06/2024 13:00:00.000",
	})
	cards, err := svc.GetCardsByFilter(ctx, member1, inRange)
	require.NoError(t, err)
	assert.Len(t, cards, 1)

	beforeNoon := mustParams(t, 0, 10, "id", query.SortAsc, map[string]string{
		models.FilterBeginDate: "01/06/2024 10:00:00.000",
		models.FilterEndDate:   "01/06/2024 11:00:00.000",
	})
	cards, err = svc.GetCardsByFilter(ctx, member1, beforeNoon)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestAggregateGet_BadDateFormat(t *testing.T) {
	svc := newCardService(t)
	params := mustParams(t, 0, 10, "id", query.SortAsc, map[string]string{
		models.FilterBeginDate: "2024-06-02",
	})
	_, err := svc.GetCardsByFilter(context.Background(), member1, params)
	var badDate *apperrors.BadDateFormatError
	assert.ErrorAs(t, err, &badDate)
}

func TestAggregateGet_StatusAndColorFilters(t *testing.T) {
	svc := newCardService(t)
	ctx := context.Background()
	first, err := svc.CreateCard(ctx, member1, dto.CardRequest{Name: "one", Color: "#AABBCC"})
	require.NoError(t, err)
	_, err = svc.CreateCard(ctx, member1, dto.CardRequest{Name: "two", Color: "#DDEEFF"})
	require.NoError(t, err)
	_, err = svc.UpdateCard(ctx, member1, first.ID, dto.CardPatch{Status: strptr("DONE")})
	require.NoError(t, err)

	params := mustParams(t, 0, 10, "id", query.SortAsc, map[string]string{
		models.FilterStatus: "DONE",
		models.FilterColor:  "#AABBCC",
	})
	cards, err := svc.GetCardsByFilter(ctx, member1, params)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, first.ID, cards[0].ID)
}

func strptr(s string) *string { return &s }
