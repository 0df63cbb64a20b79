package db

import (
	"fmt"

	"github.com/jsphweid/pianobench/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// DynamoDB caps BatchGetItem at 100 keys
const MaxBatchSize = 100

func stringAttr(item map[string]*dynamodb.AttributeValue, name string) string {
	if v, ok := item[name]; ok && v != nil && v.S != nil {
		return *v.S
	}
	return ""
}

// ToPieceMetadata reads one item keyed by filename under "PK".
func ToPieceMetadata(item map[string]*dynamodb.AttributeValue) (string, model.PieceMetadata) {
	return stringAttr(item, "PK"), model.PieceMetadata{
		Title:     stringAttr(item, "Title"),
		Composer:  stringAttr(item, "Composer"),
		Variation: stringAttr(item, "Variation"),
	}
}

func batchKeys(filenames []string) []map[string]*dynamodb.AttributeValue {
	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		key := make(map[string]*dynamodb.AttributeValue)
		key["PK"] = &dynamodb.AttributeValue{
			S: aws.String(filename),
		}
		keys = append(keys, key)
	}
	return keys
}

func GetPieceMetadatas(endpoint string, table string, filenames []string) (map[string]model.PieceMetadata, error) {
	if len(filenames) > MaxBatchSize {
		return nil, fmt.Errorf("can not look up more than %d filenames at once, got %d", MaxBatchSize, len(filenames))
	}

	res := make(map[string]model.PieceMetadata)

	if len(filenames) == 0 {
		return res, nil
	}

	session, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create a new DynamoDB session: %w", err)
	}

	client := dynamodb.New(session)
	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			table: {Keys: batchKeys(filenames)},
		},
	}
	dbres, err := client.BatchGetItem(input)
	if err != nil {
		return nil, fmt.Errorf("error from DynamoDB: %w", err)
	}

	for _, item := range dbres.Responses[table] {
		filename, meta := ToPieceMetadata(item)
		if filename != "" {
			res[filename] = meta
		}
	}

	return res, nil
}
