package db

import (
	"context"
	"fmt"

	"go-attackboard/types"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// GetAttackRecords reads every document of the collection as an attack record.
// Documents without an eventid field take their document ID.
func GetAttackRecords(ctx context.Context, client *firestore.Client, collection string) ([]types.AttackRecord, error) {
	records := []types.AttackRecord{}

	iter := client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating %s: %w", collection, err)
		}

		var record types.AttackRecord
		if err := doc.DataTo(&record); err != nil {
			return nil, fmt.Errorf("error converting document %s to AttackRecord: %w", doc.Ref.ID, err)
		}
		if record.EventID == "" {
			record.EventID = doc.Ref.ID
		}
		records = append(records, record)
	}

	return records, nil
}

// PutAttackRecords writes records keyed by event id in batches. It seeds a
// collection from a CSV extract so the firestore source has something to read.
func PutAttackRecords(ctx context.Context, client *firestore.Client, collection string, records []types.AttackRecord) (int, error) {
	const batchLimit = 500 // Firestore's per-batch write cap

	written := 0
	for start := 0; start < len(records); start += batchLimit {
		end := start + batchLimit
		if end > len(records) {
			end = len(records)
		}

		batch := client.Batch()
		for _, r := range records[start:end] {
			if r.EventID == "" {
				return written, fmt.Errorf("record at index %d has no eventid", written)
			}
			batch.Set(client.Collection(collection).Doc(r.EventID), r)
			written++
		}
		if _, err := batch.Commit(ctx); err != nil {
			return written - (end - start), fmt.Errorf("committing batch at %d: %w", start, err)
		}
	}
	return written, nil
}
