// Package models defines the core domain models for settleup.
//
// # Models
//
//   - User: a registered participant, identified by a numeric ID and a unique name
//   - Expense: one bill paid by a single user and owed back in parts
//   - Participant: a user's share of an Expense
//   - Payment: a direct transfer between two users, stored as a personal-payment Expense
//
// # Design Principles
//
//  1. Amounts are decimal.Decimal end to end; floats never touch money.
//  2. An Expense owns its participants. Updating an expense replaces the whole set.
//  3. Relationships use IDs, not pointers, so models stay free of cycles.
//  4. Validation lives next to the model and returns sentinel errors that the
//     service layer maps onto RPC codes.
package models
