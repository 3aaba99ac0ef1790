package ledger_test

import (
	"context"
	"slices"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/soartravel/soar/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo applies the "ADD #ids :ids SET #updatedAt = :updatedAt" expression the ledger sends.
type fakeDynamo struct {
	mu      sync.Mutex
	items   map[string]map[string]types.AttributeValue
	updates []*dynamodb.UpdateItemInput
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue)}
}

func (f *fakeDynamo) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := params.Key["userId"].(*types.AttributeValueMemberS).Value
	item, ok := f.items[key]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: item}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, params *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updates = append(f.updates, params)

	key := params.Key["userId"].(*types.AttributeValueMemberS).Value
	item, ok := f.items[key]
	if !ok {
		item = map[string]types.AttributeValue{"userId": &types.AttributeValueMemberS{Value: key}}
		f.items[key] = item
	}

	attr := params.ExpressionAttributeNames["#ids"]
	added := params.ExpressionAttributeValues[":ids"].(*types.AttributeValueMemberSS).Value

	var current []string
	if existing, ok := item[attr].(*types.AttributeValueMemberSS); ok {
		current = slices.Clone(existing.Value)
	}
	for _, id := range added {
		if !slices.Contains(current, id) {
			current = append(current, id)
		}
	}
	item[attr] = &types.AttributeValueMemberSS{Value: current}
	item[params.ExpressionAttributeNames["#updatedAt"]] = params.ExpressionAttributeValues[":updatedAt"]

	return &dynamodb.UpdateItemOutput{}, nil
}

func TestDynamoStore_UpdateItemInput(t *testing.T) {
	fake := newFakeDynamo()
	store := ledger.NewDynamoStore(fake, "soar-memory-sync")

	require.NoError(t, store.Add(t.Context(), "u1", ledger.KindFlightBooking, "b1", "b1", "", "b2"))

	require.Len(t, fake.updates, 1)
	input := fake.updates[0]
	assert.Equal(t, "soar-memory-sync", aws.ToString(input.TableName))
	assert.Equal(t, "ADD #ids :ids SET #updatedAt = :updatedAt", aws.ToString(input.UpdateExpression))
	assert.Equal(t, "syncedFlightBookingIds", input.ExpressionAttributeNames["#ids"])
	assert.Equal(t, []string{"b1", "b2"}, input.ExpressionAttributeValues[":ids"].(*types.AttributeValueMemberSS).Value)
}

func TestDynamoStore_SkipsEmptyAdds(t *testing.T) {
	fake := newFakeDynamo()
	store := ledger.NewDynamoStore(fake, "soar-memory-sync")

	require.NoError(t, store.Add(t.Context(), "u1", ledger.KindTrip))
	require.NoError(t, store.Add(t.Context(), "u1", ledger.KindTrip, ""))
	assert.Empty(t, fake.updates)
}
