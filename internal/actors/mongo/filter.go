package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

// liveStatus matches the statuses that hold scoped-unique values and are visible by default. It is also
// the partial filter of the unique indexes, so queries using it can be served by them.
func liveStatus() bson.M {
	return bson.M{"$in": bson.A{string(model.StatusActive), string(model.StatusInactive)}}
}

// buildFilter translates a normalized list query into a match expression. Conditions on the same field
// are merged into a single operator document.
func buildFilter(q model.ListQuery) bson.D {
	filter := bson.D{}
	if q.Status != nil {
		filter = append(filter, bson.E{Key: model.FieldEntityStatus, Value: string(*q.Status)})
	} else {
		filter = append(filter, bson.E{Key: model.FieldEntityStatus, Value: liveStatus()})
	}

	conds := newConditions()
	for _, clause := range q.Clauses {
		switch clause.Op {
		case model.OpEq:
			conds.add(clause.Field, "$eq", clause.Value)
		case model.OpIn:
			conds.add(clause.Field, "$in", clause.Value)
		case model.OpGte:
			conds.add(clause.Field, "$gte", clause.Value)
		case model.OpLte:
			conds.add(clause.Field, "$lte", clause.Value)
		}
	}
	if q.CreatedFrom != nil {
		conds.add(model.FieldCreatedAt, "$gte", *q.CreatedFrom)
	}
	if q.CreatedTo != nil {
		conds.add(model.FieldCreatedAt, "$lte", *q.CreatedTo)
	}
	filter = append(filter, conds.elements()...)

	if q.Search != "" && len(q.SearchFields) > 0 {
		or := make(bson.A, 0, len(q.SearchFields))
		for _, field := range q.SearchFields {
			or = append(or, bson.D{{Key: field, Value: searchRegex(q.Search)}})
		}
		filter = append(filter, bson.E{Key: "$or", Value: or})
	}
	return filter
}

// searchRegex matches term literally and case-insensitively anywhere in a field.
func searchRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

// sortSpec sorts on the whitelisted field with _id as tie-breaker so that pages are stable.
func sortSpec(q model.ListQuery) bson.D {
	order := int(q.SortOrder)
	if order == 0 {
		order = int(model.Descending)
	}
	return bson.D{
		{Key: q.SortField, Value: order},
		{Key: "_id", Value: order},
	}
}

type conditions struct {
	order []string
	ops   map[string]bson.D
}

func newConditions() *conditions {
	return &conditions{ops: map[string]bson.D{}}
}

func (c *conditions) add(field, op string, value any) {
	if _, ok := c.ops[field]; !ok {
		c.order = append(c.order, field)
	}
	c.ops[field] = append(c.ops[field], bson.E{Key: op, Value: value})
}

func (c *conditions) elements() []bson.E {
	out := make([]bson.E, 0, len(c.order))
	for _, field := range c.order {
		ops := c.ops[field]
		if len(ops) == 1 && ops[0].Key == "$eq" {
			out = append(out, bson.E{Key: field, Value: ops[0].Value})
			continue
		}
		out = append(out, bson.E{Key: field, Value: ops})
	}
	return out
}
