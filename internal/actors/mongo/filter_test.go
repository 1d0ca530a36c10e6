package mongo

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

func TestBuildFilter(t *testing.T) {
	deleted := model.StatusDeleted
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 23, 59, 59, 999_000_000, time.UTC)

	tests := []struct {
		name  string
		query model.ListQuery
		want  bson.D
	}{
		{
			name:  "default scope excludes deleted",
			query: model.ListQuery{},
			want:  bson.D{{Key: model.FieldEntityStatus, Value: liveStatus()}},
		},
		{
			name:  "explicit status",
			query: model.ListQuery{Status: &deleted},
			want:  bson.D{{Key: model.FieldEntityStatus, Value: "DELETED"}},
		},
		{
			name: "clauses on the same field are merged",
			query: model.ListQuery{Clauses: []model.Clause{
				model.Eq("company_id", "c-1"),
				model.Gte("years_experience", 2),
				model.Lte("years_experience", 10),
				model.In("type", []string{"CARD", "CASH"}),
			}},
			want: bson.D{
				{Key: model.FieldEntityStatus, Value: liveStatus()},
				{Key: "company_id", Value: "c-1"},
				{Key: "years_experience", Value: bson.D{{Key: "$gte", Value: 2}, {Key: "$lte", Value: 10}}},
				{Key: "type", Value: bson.D{{Key: "$in", Value: []string{"CARD", "CASH"}}}},
			},
		},
		{
			name:  "creation window",
			query: model.ListQuery{CreatedFrom: &from, CreatedTo: &to},
			want: bson.D{
				{Key: model.FieldEntityStatus, Value: liveStatus()},
				{Key: model.FieldCreatedAt, Value: bson.D{{Key: "$gte", Value: from}, {Key: "$lte", Value: to}}},
			},
		},
		{
			name:  "search over every field",
			query: model.ListQuery{Search: "ada", SearchFields: []string{"first_name", "email"}},
			want: bson.D{
				{Key: model.FieldEntityStatus, Value: liveStatus()},
				{Key: "$or", Value: bson.A{
					bson.D{{Key: "first_name", Value: searchRegex("ada")}},
					bson.D{{Key: "email", Value: searchRegex("ada")}},
				}},
			},
		},
		{
			name:  "search without fields is ignored",
			query: model.ListQuery{Search: "ada"},
			want:  bson.D{{Key: model.FieldEntityStatus, Value: liveStatus()}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, buildFilter(test.query))
		})
	}
}

func TestSearchRegexIsLiteral(t *testing.T) {
	tests := []struct {
		term      string
		matches   []string
		unmatched []string
	}{
		{term: "a.*b", matches: []string{"xa.*by", "A.*B"}, unmatched: []string{"axyzb", "ab"}},
		{term: "(admin)", matches: []string{"the (ADMIN) user"}, unmatched: []string{"admin"}},
		{term: "$ne", matches: []string{"$NE"}, unmatched: []string{"ne"}},
		{term: "100%", matches: []string{"100% off"}, unmatched: []string{"1000"}},
	}
	for _, test := range tests {
		t.Run(test.term, func(t *testing.T) {
			re := searchRegex(test.term)
			assert.Equal(t, "i", re.Options)
			compiled, err := regexp.Compile("(?i)" + re.Pattern)
			require.NoError(t, err)
			for _, s := range test.matches {
				assert.True(t, compiled.MatchString(s), s)
			}
			for _, s := range test.unmatched {
				assert.False(t, compiled.MatchString(s), s)
			}
		})
	}
}

func TestSortSpec(t *testing.T) {
	assert.Equal(t,
		bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}},
		sortSpec(model.ListQuery{SortField: "name", SortOrder: model.Ascending}))
	assert.Equal(t,
		bson.D{{Key: model.FieldCreatedAt, Value: -1}, {Key: "_id", Value: -1}},
		sortSpec(model.ListQuery{SortField: model.FieldCreatedAt}))
}
