package state

import (
	"sync"
	"testing"
)

func TestStore_DispatchAndSnapshotClone(t *testing.T) {
	s := New(Initial())

	s.Dispatch(AddToCart{Item: CartLineItem{VariantID: "v1", Quantity: 1}})
	s.Dispatch(AddToCart{Item: CartLineItem{VariantID: "v2", Quantity: 1}})

	snap := s.Snapshot()
	if len(snap.CartItems) != 2 || snap.CartItems[0].VariantID != "v1" {
		t.Fatalf("snapshot cart = %#v, want 2 items", snap.CartItems)
	}

	// Returned snapshot should be independent of the stored one.
	snap.CartItems[0].Quantity = 999
	snap2 := s.Snapshot()
	if snap2.CartItems[0].Quantity != 1 {
		t.Fatalf("Snapshot should clone cart; got quantity %d want 1", snap2.CartItems[0].Quantity)
	}
}

func TestStore_ListenersSeePrevAndNextInOrder(t *testing.T) {
	s := New(Initial())

	var calls []string
	s.Subscribe(ListenerFunc(func(prev, next AppState, action Action) {
		if prev.DarkMode == next.DarkMode {
			t.Errorf("first listener: theme flag did not change")
		}
		calls = append(calls, "first:"+action.Kind())
	}))
	s.Subscribe(ListenerFunc(func(prev, next AppState, action Action) {
		calls = append(calls, "second:"+action.Kind())
	}))

	s.Dispatch(ToggleDarkMode{})

	want := []string{"first:toggle_dark_mode", "second:toggle_dark_mode"}
	if len(calls) != len(want) || calls[0] != want[0] || calls[1] != want[1] {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
}

func TestStore_ReentrantDispatchIsQueued(t *testing.T) {
	s := New(Initial())

	var kinds []string
	s.Subscribe(ListenerFunc(func(prev, next AppState, action Action) {
		kinds = append(kinds, action.Kind())
		if _, ok := action.(ToggleCart); ok {
			// Must not run inside this callback.
			s.Dispatch(SetCartID{ID: "cart-1"})
			if s.Snapshot().CartID != "" {
				t.Errorf("nested dispatch applied before outer listeners returned")
			}
		}
	}))

	s.Dispatch(ToggleCart{})

	if got := s.Snapshot().CartID; got != "cart-1" {
		t.Fatalf("CartID = %q, want cart-1", got)
	}
	if len(kinds) != 2 || kinds[0] != "toggle_cart" || kinds[1] != "set_cart_id" {
		t.Fatalf("kinds = %v, want [toggle_cart set_cart_id]", kinds)
	}
}

func TestStore_Unsubscribe(t *testing.T) {
	s := New(Initial())

	count := 0
	unsubscribe := s.Subscribe(ListenerFunc(func(AppState, AppState, Action) { count++ }))
	s.Dispatch(ToggleCart{})
	unsubscribe()
	s.Dispatch(ToggleCart{})

	if count != 1 {
		t.Fatalf("listener calls = %d, want 1", count)
	}
}

func TestStore_CloseIgnoresLaterDispatch(t *testing.T) {
	s := New(Initial())
	s.Close()
	s.Dispatch(ToggleDarkMode{})
	s.Dispatch(nil)

	if s.Snapshot().DarkMode {
		t.Fatal("DarkMode = true after Close, want dispatch ignored")
	}
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	s := New(Initial())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(AddToCart{Item: CartLineItem{VariantID: "v1", Quantity: 1}})
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	if len(snap.CartItems) != 1 || snap.CartItems[0].Quantity != 50 {
		t.Fatalf("cart = %#v, want one line with quantity 50", snap.CartItems)
	}
}
