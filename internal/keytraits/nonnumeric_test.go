package keytraits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexusdb/internal/variant"
)

func TestStringComparatorOrdersLexicographically(t *testing.T) {
	assert.Equal(t, -1, StringComparator([]byte("apple"), []byte("banana")))
	assert.Equal(t, 0, StringComparator([]byte("apple"), []byte("apple")))
	assert.Equal(t, 1, StringComparator([]byte("banana"), []byte("apple")))
}

func TestDateTimeKeyRoundTripAndOrder(t *testing.T) {
	earlier := variant.RawDateTime{Year: 2020, Month: 1, DayOfMonth: 1}
	later := variant.RawDateTime{Year: 2024, Month: 6, DayOfMonth: 15, HasTimePart: true, Hours: 12}

	bufA := make([]byte, DateTimeKeySize)
	bufB := make([]byte, DateTimeKeySize)
	EncodeDateTimeKey(earlier, bufA)
	EncodeDateTimeKey(later, bufB)

	assert.Equal(t, decodeDateTimeKey(bufA).Year, earlier.Year)
	assert.Equal(t, -1, DateTimeComparator(bufA, bufB))
	assert.Equal(t, 1, DateTimeComparator(bufB, bufA))
}

func TestDateTimeTraitsMinLessThanMax(t *testing.T) {
	assert.Equal(t, -1, DateTime.Compare(DateTime.MinKey(), DateTime.MaxKey()))
}

func TestForIntegerTypeCoversAllEightFamilies(t *testing.T) {
	types := []variant.Type{
		variant.TypeInt8, variant.TypeInt16, variant.TypeInt32, variant.TypeInt64,
		variant.TypeUInt8, variant.TypeUInt16, variant.TypeUInt32, variant.TypeUInt64,
	}
	for _, ty := range types {
		traits, ok := ForIntegerType(ty)
		require.True(t, ok, ty.String())
		assert.NotNil(t, traits)
	}
	_, ok := ForIntegerType(variant.TypeString)
	assert.False(t, ok)
}
