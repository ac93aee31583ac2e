package arena

//go:generate go tool mockgen -destination=./mocks/observer_mock.go -package=mocks . Observer

// Observer receives gameplay notifications for scoring and presentation.
// Callbacks run synchronously on the simulation goroutine and must not block.
type Observer interface {
	BombPlaced(b *Bomb)
	BombExploded(b *Bomb)
	KickStarted(b *Bomb, kicker OwnerID)
	KickStopped(b *Bomb)
	SegmentSpawned(s *Segment)
	SegmentExpired(s *Segment)
	PlayerHit(s *Segment, victim OwnerID)
	BlockDestroyed(s *Segment, h ObstacleHandle)
	PowerupDestroyed(s *Segment, h ObstacleHandle)
	BombChainExploded(trigger SegmentID, b *Bomb)
}

// NopObserver ignores every notification. Embed it to implement a subset.
type NopObserver struct{}

func (NopObserver) BombPlaced(*Bomb)                          {}
func (NopObserver) BombExploded(*Bomb)                        {}
func (NopObserver) KickStarted(*Bomb, OwnerID)                {}
func (NopObserver) KickStopped(*Bomb)                         {}
func (NopObserver) SegmentSpawned(*Segment)                   {}
func (NopObserver) SegmentExpired(*Segment)                   {}
func (NopObserver) PlayerHit(*Segment, OwnerID)               {}
func (NopObserver) BlockDestroyed(*Segment, ObstacleHandle)   {}
func (NopObserver) PowerupDestroyed(*Segment, ObstacleHandle) {}
func (NopObserver) BombChainExploded(SegmentID, *Bomb)        {}

// Observers fans notifications out to several observers in order.
type Observers []Observer

func (o Observers) BombPlaced(b *Bomb) {
	for _, obs := range o {
		obs.BombPlaced(b)
	}
}

func (o Observers) BombExploded(b *Bomb) {
	for _, obs := range o {
		obs.BombExploded(b)
	}
}

func (o Observers) KickStarted(b *Bomb, kicker OwnerID) {
	for _, obs := range o {
		obs.KickStarted(b, kicker)
	}
}

func (o Observers) KickStopped(b *Bomb) {
	for _, obs := range o {
		obs.KickStopped(b)
	}
}

func (o Observers) SegmentSpawned(s *Segment) {
	for _, obs := range o {
		obs.SegmentSpawned(s)
	}
}

func (o Observers) SegmentExpired(s *Segment) {
	for _, obs := range o {
		obs.SegmentExpired(s)
	}
}

func (o Observers) PlayerHit(s *Segment, victim OwnerID) {
	for _, obs := range o {
		obs.PlayerHit(s, victim)
	}
}

func (o Observers) BlockDestroyed(s *Segment, h ObstacleHandle) {
	for _, obs := range o {
		obs.BlockDestroyed(s, h)
	}
}

func (o Observers) PowerupDestroyed(s *Segment, h ObstacleHandle) {
	for _, obs := range o {
		obs.PowerupDestroyed(s, h)
	}
}

func (o Observers) BombChainExploded(trigger SegmentID, b *Bomb) {
	for _, obs := range o {
		obs.BombChainExploded(trigger, b)
	}
}

var (
	_ Observer = NopObserver{}
	_ Observer = Observers(nil)
)
