package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDateBasedToken(t *testing.T) {
	// Test with a known date
	testDate := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	token := EncodeDateBasedToken(testDate)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, err := DecodeDateBasedToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, testDate, decodedDate, "Date should match after decode")

	// Test with current time
	now := time.Now().UTC()
	nowToken := EncodeDateBasedToken(now)

	decodedNow, err := DecodeDateBasedToken(nowToken)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.True(t, now.Equal(decodedNow), "Date should match after decode")
}

func TestDecodeDateBasedTokenError(t *testing.T) {
	// Test invalid base64
	_, err := DecodeDateBasedToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test valid base64 that is not a date
	_, err = DecodeDateBasedToken("bm90YWRhdGU=") // "notadate"
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "date parse", "Error should mention date parsing issue")
}

func TestEncodeMultiFieldToken(t *testing.T) {
	// Test with simple fields
	fields := []string{"field1", "field2", "field3"}
	token := EncodeMultiFieldToken(fields...)

	decodedFields, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, fields, decodedFields, "Fields should match after decode")

	// Test with empty fields
	emptyToken := EncodeMultiFieldToken()
	decodedEmpty, err := DecodeMultiFieldToken(emptyToken)
	assert.NoError(t, err, "Decoding should not return an error")
	// When splitting an empty string with strings.Split, we get a slice with one empty string
	assert.Equal(t, []string{""}, decodedEmpty, "Should decode to slice with one empty string")

	// Test fields with timestamps, the shape the activity list pagination uses
	timestampStr := time.Now().UTC().Format(time.RFC3339Nano)
	timeToken := EncodeMultiFieldToken(timestampStr, "activity123")

	decodedTime, err := DecodeMultiFieldToken(timeToken)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, 2, len(decodedTime), "Should have decoded 2 fields")
	assert.Equal(t, timestampStr, decodedTime[0], "Timestamp field should match")
	assert.Equal(t, "activity123", decodedTime[1], "Second field should match")
}

func TestDecodeMultiFieldTokenError(t *testing.T) {
	_, err := DecodeMultiFieldToken("not valid base64!!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")
}
