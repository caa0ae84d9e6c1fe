package repository

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"quotedesk/internal/domain/entities"
	"quotedesk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const defaultQuotesTableName = "quotes"

// quoteIDMarkerPrefix keys the uniqueness marker items that reserve a
// business identifier. Markers share the quotes table and survive quote
// deletion, so a deleted quote's id is never reused.
const quoteIDMarkerPrefix = "quoteid#"

type lineItemItem struct {
	Category  string `dynamodbav:"category"`
	Quantity  int64  `dynamodbav:"quantity"`
	UnitPrice string `dynamodbav:"unit_price"`
	Subtotal  string `dynamodbav:"subtotal"`
}

type timelineEventItem struct {
	Type      string `dynamodbav:"type"`
	Timestamp string `dynamodbav:"timestamp"`
	Actor     string `dynamodbav:"actor"`
	Detail    string `dynamodbav:"detail"`
}

type quoteItem struct {
	ID                  string              `dynamodbav:"id"`
	QuoteID             string              `dynamodbav:"quote_id"`
	Status              string              `dynamodbav:"status"`
	LineItems           []lineItemItem      `dynamodbav:"line_items"`
	ImplementationPrice string              `dynamodbav:"implementation_price"`
	CompanyName         string              `dynamodbav:"company_name"`
	ContactName         string              `dynamodbav:"contact_name"`
	ContactEmail        string              `dynamodbav:"contact_email"`
	Timeline            []timelineEventItem `dynamodbav:"timeline"`
	CreatedBy           string              `dynamodbav:"created_by"`
	CreatedAt           string              `dynamodbav:"created_at"`
	UpdatedAt           string              `dynamodbav:"updated_at"`
	Version             int64               `dynamodbav:"version"`
}

// QuoteDynamoRepository persists Quote aggregates in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Concurrency model:
//   - version is an optimistic-concurrency counter; Update is conditional on
//     the caller's loaded version and bumps it, so of two racing writers
//     exactly one succeeds and the other gets ErrConflict.
//   - Timeline mutation is a server-side list_append, never a read-modify-
//     write, so concurrent appends cannot lose events.

type QuoteDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
	}
}

// Create writes the quote and its business-id marker in one transaction.
// Either condition failing (id collision or a taken quote_id) cancels both
// writes and surfaces ErrDuplicateQuoteID.
func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	now := time.Now().UTC()
	q.CreatedAt = now
	q.UpdatedAt = now
	q.Version = 1

	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:                aws.String(r.tableName),
					Item:                     av,
					ConditionExpression:      aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{"#id": "id"},
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(r.tableName),
					Item: map[string]types.AttributeValue{
						"id":       &types.AttributeValueMemberS{Value: markerKey(q.QuoteID)},
						"quote_pk": &types.AttributeValueMemberS{Value: q.ID},
					},
					ConditionExpression:      aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{"#id": "id"},
				},
			},
		},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) && hasConditionalCheckFailure(canceled) {
			return entities.Quote{}, interfaces.ErrDuplicateQuoteID
		}
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

// List scans the table, filters server-side where DynamoDB allows it and
// paginates in memory, newest first. Quote volume for a quoting tool stays
// small enough that a scan is acceptable; markers are excluded by requiring
// the quote_id attribute.
func (r *QuoteDynamoRepository) List(ctx context.Context, filter interfaces.ListFilter, page, pageSize int) ([]entities.Quote, int, error) {
	filterExpr, names, values := buildListFilter(filter)

	var items []quoteItem
	var lastKey map[string]types.AttributeValue
	for {
		input := &dynamodb.ScanInput{
			TableName:                aws.String(r.tableName),
			FilterExpression:         aws.String(filterExpr),
			ExpressionAttributeNames: names,
			ExclusiveStartKey:        lastKey,
		}
		if len(values) > 0 {
			input.ExpressionAttributeValues = values
		}

		out, err := r.ddb.Scan(ctx, input)
		if err != nil {
			return nil, 0, err
		}

		var pageItems []quoteItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &pageItems); err != nil {
			return nil, 0, err
		}
		items = append(items, pageItems...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = out.LastEvaluatedKey
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})

	total := len(items)
	start := (page - 1) * pageSize
	if start >= total {
		return []entities.Quote{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	quotes := make([]entities.Quote, 0, end-start)
	for _, it := range items[start:end] {
		quotes = append(quotes, fromQuoteItem(it))
	}
	return quotes, total, nil
}

// Update rewrites the mutable attributes conditional on the version the
// caller loaded. A failed condition on an existing item means a concurrent
// writer got there first.
func (r *QuoteDynamoRepository) Update(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	it := toQuoteItem(q)

	lineItems, err := attributevalue.Marshal(it.LineItems)
	if err != nil {
		return entities.Quote{}, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: q.ID},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :version"),
		UpdateExpression: aws.String("SET #status = :status, #line_items = :line_items, " +
			"#implementation_price = :implementation_price, #company_name = :company_name, " +
			"#contact_name = :contact_name, #contact_email = :contact_email, " +
			"#updated_at = :updated_at, #version = :next_version"),
		ExpressionAttributeNames: map[string]string{
			"#id":                   "id",
			"#status":               "status",
			"#line_items":           "line_items",
			"#implementation_price": "implementation_price",
			"#company_name":         "company_name",
			"#contact_name":         "contact_name",
			"#contact_email":        "contact_email",
			"#updated_at":           "updated_at",
			"#version":              "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":               &types.AttributeValueMemberS{Value: it.Status},
			":line_items":           lineItems,
			":implementation_price": &types.AttributeValueMemberS{Value: it.ImplementationPrice},
			":company_name":         &types.AttributeValueMemberS{Value: it.CompanyName},
			":contact_name":         &types.AttributeValueMemberS{Value: it.ContactName},
			":contact_email":        &types.AttributeValueMemberS{Value: it.ContactEmail},
			":updated_at":           &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
			":version":              &types.AttributeValueMemberN{Value: strconv.FormatInt(q.Version, 10)},
			":next_version":         &types.AttributeValueMemberN{Value: strconv.FormatInt(q.Version+1, 10)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Quote{}, interfaces.ErrConflict
		}
		return entities.Quote{}, err
	}

	var updated quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &updated); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(updated), nil
}

// AppendTimelineEvent appends one event atomically via list_append. It does
// not touch the version: appends are not guarded mutations and two concurrent
// appends must both land.
func (r *QuoteDynamoRepository) AppendTimelineEvent(ctx context.Context, id string, event entities.TimelineEvent) error {
	eventAV, err := attributevalue.MarshalMap(toTimelineEventItem(event))
	if err != nil {
		return err
	}

	_, err = r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #timeline = list_append(if_not_exists(#timeline, :empty), :event)"),
		ExpressionAttributeNames: map[string]string{
			"#id":       "id",
			"#timeline": "timeline",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":event": &types.AttributeValueMemberL{Value: []types.AttributeValue{
				&types.AttributeValueMemberM{Value: eventAV},
			}},
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
		},
	})
	return err
}

// Delete removes the quote item. The business-id marker stays so the id
// cannot be claimed again.
func (r *QuoteDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	return err
}

func markerKey(quoteID string) string {
	return quoteIDMarkerPrefix + strings.ToLower(strings.TrimSpace(quoteID))
}

func hasConditionalCheckFailure(canceled *types.TransactionCanceledException) bool {
	for _, reason := range canceled.CancellationReasons {
		if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}

// buildListFilter assembles the Scan filter. The attribute_exists(#quote_id)
// clause excludes uniqueness marker items.
func buildListFilter(filter interfaces.ListFilter) (string, map[string]string, map[string]types.AttributeValue) {
	expr := "attribute_exists(#quote_id)"
	names := map[string]string{"#quote_id": "quote_id"}
	values := map[string]types.AttributeValue{}

	if filter.Status != "" {
		expr += " AND #status = :status"
		names["#status"] = "status"
		values[":status"] = &types.AttributeValueMemberS{Value: string(filter.Status)}
	}
	if s := strings.TrimSpace(filter.CreatedBy); s != "" {
		expr += " AND #created_by = :created_by"
		names["#created_by"] = "created_by"
		values[":created_by"] = &types.AttributeValueMemberS{Value: s}
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		expr += " AND (contains(#quote_id, :search) OR contains(#company_name, :search) OR contains(#contact_email, :search))"
		names["#company_name"] = "company_name"
		names["#contact_email"] = "contact_email"
		values[":search"] = &types.AttributeValueMemberS{Value: s}
	}
	return expr, names, values
}

func toQuoteItem(q entities.Quote) quoteItem {
	lineItems := make([]lineItemItem, 0, len(q.LineItems))
	for _, li := range q.LineItems {
		lineItems = append(lineItems, lineItemItem{
			Category:  li.Category,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice.String(),
			Subtotal:  li.Subtotal.String(),
		})
	}

	timeline := make([]timelineEventItem, 0, len(q.Timeline))
	for _, ev := range q.Timeline {
		timeline = append(timeline, toTimelineEventItem(ev))
	}

	return quoteItem{
		ID:                  q.ID,
		QuoteID:             q.QuoteID,
		Status:              string(q.Status),
		LineItems:           lineItems,
		ImplementationPrice: q.ImplementationPrice.String(),
		CompanyName:         q.CompanyName,
		ContactName:         q.ContactName,
		ContactEmail:        q.ContactEmail,
		Timeline:            timeline,
		CreatedBy:           q.CreatedBy,
		CreatedAt:           q.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:           q.UpdatedAt.UTC().Format(time.RFC3339Nano),
		Version:             q.Version,
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	lineItems := make([]entities.LineItem, 0, len(it.LineItems))
	for _, li := range it.LineItems {
		unitPrice, _ := decimal.NewFromString(li.UnitPrice)
		subtotal, _ := decimal.NewFromString(li.Subtotal)
		lineItems = append(lineItems, entities.LineItem{
			Category:  li.Category,
			Quantity:  li.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  subtotal,
		})
	}

	timeline := make([]entities.TimelineEvent, 0, len(it.Timeline))
	for _, ev := range it.Timeline {
		timeline = append(timeline, fromTimelineEventItem(ev))
	}

	implementationPrice, _ := decimal.NewFromString(it.ImplementationPrice)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	return entities.Quote{
		ID:                  it.ID,
		QuoteID:             it.QuoteID,
		Status:              entities.QuoteStatus(it.Status),
		LineItems:           lineItems,
		ImplementationPrice: implementationPrice,
		CompanyName:         it.CompanyName,
		ContactName:         it.ContactName,
		ContactEmail:        it.ContactEmail,
		Timeline:            timeline,
		CreatedBy:           it.CreatedBy,
		CreatedAt:           createdAt,
		UpdatedAt:           updatedAt,
		Version:             it.Version,
	}
}

func toTimelineEventItem(ev entities.TimelineEvent) timelineEventItem {
	return timelineEventItem{
		Type:      string(ev.Type),
		Timestamp: ev.Timestamp.UTC().Format(time.RFC3339Nano),
		Actor:     ev.Actor,
		Detail:    ev.Detail,
	}
}

func fromTimelineEventItem(it timelineEventItem) entities.TimelineEvent {
	ts, _ := time.Parse(time.RFC3339Nano, it.Timestamp)
	return entities.TimelineEvent{
		Type:      entities.EventType(it.Type),
		Timestamp: ts,
		Actor:     it.Actor,
		Detail:    it.Detail,
	}
}
