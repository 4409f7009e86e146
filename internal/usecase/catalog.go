package usecase

// Catalog bundles the collaborators shared by the entity usecases.
type Catalog struct {
	Tx     Transactor
	Oracle *ExistenceOracle
	Sync   *AssociationSynchronizer
	Events EventPublisher
}

// NewCatalog wires the existence oracle and the association synchronizer onto one
// store. A nil publisher disables change events.
func NewCatalog(tx Transactor, checker ExistenceChecker, assoc AssociationRepository, events EventPublisher) *Catalog {
	if events == nil {
		events = nopPublisher{}
	}
	oracle := NewExistenceOracle(checker)
	return &Catalog{
		Tx:     tx,
		Oracle: oracle,
		Sync:   NewAssociationSynchronizer(tx, oracle, assoc),
		Events: events,
	}
}
