package events

import "github.com/lojf/regform/internal/models"

// OnRegistered is called after a student record has been stored.
// The record carries the stored password form, never the plaintext when hashing is on.
var OnRegistered func(rec models.StudentRecord)
