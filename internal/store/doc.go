// Package store defines the persistence ports the service layer depends
// on: the DeckStore, CardStore and UserStore interfaces, the DBTX
// abstraction over connections and transactions, the RunInTransaction
// helper, and the sentinel error taxonomy shared by all implementations.
package store
