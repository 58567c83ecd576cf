package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/repetify-api/internal/domain"
)

func TestNewCardResponsePreviousCorrectReview(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	card, err := domain.NewCard(uuid.New(), "hund", "dog", now)
	require.NoError(t, err)

	// Never answered correctly: the field must serialize as null.
	resp := NewCardResponse(card)
	assert.Nil(t, resp.PreviousCorrectReview)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"previous_correct_review":null`)

	// After a correct answer the instant is carried through.
	reviewedAt := now.Add(48 * time.Hour)
	reviewed, err := card.WithReviewState(1, reviewedAt.AddDate(0, 0, 1), reviewedAt, reviewedAt)
	require.NoError(t, err)

	resp = NewCardResponse(reviewed)
	require.NotNil(t, resp.PreviousCorrectReview)
	assert.True(t, resp.PreviousCorrectReview.Equal(reviewedAt))
}

func TestNewDeckListResponseEmpty(t *testing.T) {
	resp := NewDeckListResponse(nil)

	// An empty deck list serializes as [], not null.
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestNewDeckResponse(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	desc := "Common words"
	deck, err := domain.NewDeck(uuid.New(), "German basics", &desc, "German", "English", now)
	require.NoError(t, err)

	resp := NewDeckResponse(deck)

	assert.Equal(t, deck.ID, resp.ID)
	assert.Equal(t, deck.UserID, resp.UserID)
	assert.Equal(t, deck.Name, resp.Name)
	require.NotNil(t, resp.Description)
	assert.Equal(t, desc, *resp.Description)
	assert.Equal(t, "German", resp.OriginalLanguage)
	assert.Equal(t, "English", resp.TranslatedLanguage)
}

func TestDeckResponseRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	desc := "Common words"
	deck, err := domain.NewDeck(uuid.New(), "German basics", &desc, "German", "English", now)
	require.NoError(t, err)

	raw, err := json.Marshal(NewDeckResponse(deck))
	require.NoError(t, err)

	// Every identifying field must survive an encode/decode cycle exactly.
	var decoded DeckResponse
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, deck.ID, decoded.ID)
	assert.Equal(t, deck.UserID, decoded.UserID)
	assert.Equal(t, deck.Name, decoded.Name)
	require.NotNil(t, decoded.Description)
	assert.Equal(t, desc, *decoded.Description)
	assert.Equal(t, deck.OriginalLanguage, decoded.OriginalLanguage)
	assert.Equal(t, deck.TranslatedLanguage, decoded.TranslatedLanguage)

	// A deck without a description omits the field and decodes back to nil.
	noDesc, err := domain.NewDeck(uuid.New(), "Plain", nil, "German", "English", now)
	require.NoError(t, err)

	raw, err = json.Marshal(NewDeckResponse(noDesc))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"description"`)

	decoded = DeckResponse{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, noDesc.UserID, decoded.UserID)
	assert.Nil(t, decoded.Description)
}
