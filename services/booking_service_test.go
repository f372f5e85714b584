package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"venue-backend/middleware"
	"venue-backend/models"
)

const selfServeID = uint(2)

func newBookingService(t *testing.T) (*BookingService, *CustomerService) {
	t.Helper()
	db := newTestDB(t)
	return NewBookingService(db, selfServeID), NewCustomerService(db)
}

func TestCreateByCustomerPinsOwnershipAndHandler(t *testing.T) {
	svc, _ := newBookingService(t)
	owner := seedCustomer(t, svc.DB, "Hari Sharma", "9841000001")
	other := seedCustomer(t, svc.DB, "Sita Rai", "9851000002")

	in := bookingInput()
	in.CustomerID = other.ID           // spoof attempt
	in.Status = models.StatusConfirmed // must be ignored too

	booking, err := svc.CreateByCustomer(in, owner.ID)
	if err != nil {
		t.Fatalf("CreateByCustomer: %v", err)
	}
	if booking.CustomerID != owner.ID {
		t.Errorf("customerId = %d, want acting customer %d", booking.CustomerID, owner.ID)
	}
	if booking.HandledByUserID != selfServeID {
		t.Errorf("handledByUserId = %d, want self-serve id %d", booking.HandledByUserID, selfServeID)
	}
	if booking.Status != models.StatusPending {
		t.Errorf("status = %q, want Pending", booking.Status)
	}
}

func TestCreateByStaffRequiresCustomer(t *testing.T) {
	svc, _ := newBookingService(t)
	staff := seedStaff(t, svc.DB, models.RoleStaff)

	in := bookingInput()
	_, err := svc.CreateByStaff(in, staff.ID)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error without customerId, got %v", err)
	}
}

func TestCreateByStaffToleratesDanglingCustomer(t *testing.T) {
	// No existence check on the supplied customer id: the reference may
	// dangle and the joined views render without a customer.
	svc, _ := newBookingService(t)
	staff := seedStaff(t, svc.DB, models.RoleStaff)

	in := bookingInput()
	in.CustomerID = 999

	booking, err := svc.CreateByStaff(in, staff.ID)
	if err != nil {
		t.Fatalf("CreateByStaff: %v", err)
	}
	if booking.HandledByUserID != staff.ID {
		t.Errorf("handledByUserId = %d, want acting staff %d", booking.HandledByUserID, staff.ID)
	}

	all, err := svc.GetAll()
	if err != nil {
		t.Fatalf("GetAll with dangling customer: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d bookings, want 1", len(all))
	}
}

func TestCheckAvailability(t *testing.T) {
	svc, _ := newBookingService(t)
	staff := seedStaff(t, svc.DB, models.RoleStaff)
	customer := seedCustomer(t, svc.DB, "Hari Sharma", "9841000001")

	seed := bookingInput()
	seed.CustomerID = customer.ID
	seed.StartTime = "19:00"
	seed.EndTime = "21:00"
	if _, err := svc.CreateByStaff(seed, staff.ID); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"nested overlap", "18:00", "22:00", false},
		{"exact match", "19:00", "21:00", false},
		{"partial overlap head", "18:00", "19:30", false},
		{"partial overlap tail", "20:30", "23:00", false},
		{"touching boundary before", "17:00", "19:00", true},
		{"touching boundary after", "21:00", "23:00", true},
		{"disjoint", "10:00", "12:00", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.CheckAvailability("2025-06-01", tc.start, tc.end)
			if err != nil {
				t.Fatalf("CheckAvailability: %v", err)
			}
			if got != tc.want {
				t.Errorf("available = %v, want %v", got, tc.want)
			}
		})
	}

	t.Run("other date is free", func(t *testing.T) {
		got, err := svc.CheckAvailability("2025-06-02", "19:00", "21:00")
		if err != nil {
			t.Fatalf("CheckAvailability: %v", err)
		}
		if !got {
			t.Error("different date should be available")
		}
	})

	t.Run("cancelled bookings do not block", func(t *testing.T) {
		if err := svc.DB.Model(&models.Booking{}).
			Where("1 = 1").
			Update("status", models.StatusCancelled).Error; err != nil {
			t.Fatalf("cancel seed: %v", err)
		}
		got, err := svc.CheckAvailability("2025-06-01", "19:00", "21:00")
		if err != nil {
			t.Fatalf("CheckAvailability: %v", err)
		}
		if !got {
			t.Error("cancelled booking must not block the slot")
		}
	})
}

// Documents the accepted race window: the availability check and the
// subsequent create are not atomic, so two overlapping bookings can
// both pass the check and both persist. This is a known limitation,
// not behavior to silently tighten.
func TestAvailabilityCheckThenCreateIsNotAtomic(t *testing.T) {
	svc, _ := newBookingService(t)
	staff := seedStaff(t, svc.DB, models.RoleStaff)
	customer := seedCustomer(t, svc.DB, "Hari Sharma", "9841000001")

	in := bookingInput()
	in.CustomerID = customer.ID

	for i := 0; i < 2; i++ {
		available, err := svc.CheckAvailability(in.EventDate, in.StartTime, in.EndTime)
		if err != nil {
			t.Fatalf("CheckAvailability: %v", err)
		}
		if i == 0 && !available {
			t.Fatal("first check should report available")
		}
		if _, err := svc.CreateByStaff(in, staff.ID); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	var n int64
	svc.DB.Model(&models.Booking{}).Count(&n)
	if n != 2 {
		t.Fatalf("got %d bookings, want 2 overlapping rows (accepted race)", n)
	}
}

func TestUpdateByCustomerGating(t *testing.T) {
	svc, _ := newBookingService(t)
	owner := seedCustomer(t, svc.DB, "Hari Sharma", "9841000001")
	stranger := seedCustomer(t, svc.DB, "Sita Rai", "9851000002")

	booking, err := svc.CreateByCustomer(bookingInput(), owner.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	edit := bookingInput()
	edit.GuestCount = 80

	if _, err := svc.UpdateByCustomer(999, edit, owner.ID); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("missing booking: got %v, want ErrBookingNotFound", err)
	}
	if _, err := svc.UpdateByCustomer(booking.ID, edit, stranger.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign owner: got %v, want ErrForbidden", err)
	}

	if err := svc.DB.Model(&models.Booking{}).Where("id = ?", booking.ID).
		Update("status", models.StatusConfirmed).Error; err != nil {
		t.Fatalf("confirm: %v", err)
	}
	_, err = svc.UpdateByCustomer(booking.ID, edit, owner.ID)
	var stateErr *InvalidStateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("confirmed booking: got %v, want InvalidStateError", err)
	}
	if stateErr.Status != models.StatusConfirmed {
		t.Errorf("blocking status = %q, want Confirmed", stateErr.Status)
	}

	if err := svc.DB.Model(&models.Booking{}).Where("id = ?", booking.ID).
		Update("status", models.StatusPending).Error; err != nil {
		t.Fatalf("revert: %v", err)
	}
	updated, err := svc.UpdateByCustomer(booking.ID, edit, owner.ID)
	if err != nil {
		t.Fatalf("owner edit while Pending: %v", err)
	}
	if updated.GuestCount != 80 {
		t.Errorf("guestCount = %d, want 80", updated.GuestCount)
	}
	if updated.Status != models.StatusPending {
		t.Errorf("status changed by customer edit: %q", updated.Status)
	}
}

func TestCancelByCustomer(t *testing.T) {
	svc, _ := newBookingService(t)
	owner := seedCustomer(t, svc.DB, "Hari Sharma", "9841000001")
	stranger := seedCustomer(t, svc.DB, "Sita Rai", "9851000002")

	booking, err := svc.CreateByCustomer(bookingInput(), owner.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.CancelByCustomer(booking.ID, stranger.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign owner: got %v, want ErrForbidden", err)
	}

	if err := svc.CancelByCustomer(booking.ID, owner.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	var stored models.Booking
	if err := svc.DB.First(&stored, booking.ID).Error; err != nil {
		t.Fatalf("soft-cancelled row should remain: %v", err)
	}
	if stored.Status != models.StatusCancelled {
		t.Errorf("status = %q, want Cancelled", stored.Status)
	}

	// A second cancel hits the state gate: the booking is no longer Pending.
	err = svc.CancelByCustomer(booking.ID, owner.ID)
	var stateErr *InvalidStateError
	if !errors.As(err, &stateErr) || stateErr.Status != models.StatusCancelled {
		t.Errorf("second cancel: got %v, want InvalidStateError{Cancelled}", err)
	}
}

func TestUpdateByStaffUnrestricted(t *testing.T) {
	svc, _ := newBookingService(t)
	staff := seedStaff(t, svc.DB, models.RoleAdmin)
	customer := seedCustomer(t, svc.DB, "Hari Sharma", "9841000001")

	in := bookingInput()
	in.CustomerID = customer.ID
	booking, err := svc.CreateByStaff(in, staff.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Staff may write any status, including skipping straight to
	// Completed and reverting afterwards.
	for _, status := range []string{models.StatusCompleted, models.StatusPending, models.StatusCancelled} {
		edit := in
		edit.Status = status
		updated, err := svc.UpdateByStaff(booking.ID, edit)
		if err != nil {
			t.Fatalf("staff update to %s: %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("status = %q, want %q", updated.Status, status)
		}
	}

	edit := in
	edit.Status = "Archived"
	if _, err := svc.UpdateByStaff(booking.ID, edit); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown status: got %v, want ErrValidation", err)
	}

	if _, err := svc.UpdateByStaff(999, in); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("missing id: got %v, want ErrBookingNotFound", err)
	}
}

func TestDeleteByStaffCascadesPayments(t *testing.T) {
	svc, _ := newBookingService(t)
	staff := seedStaff(t, svc.DB, models.RoleAdmin)
	customer := seedCustomer(t, svc.DB, "Hari Sharma", "9841000001")

	in := bookingInput()
	in.CustomerID = customer.ID
	booking, err := svc.CreateByStaff(in, staff.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	seedPayment(t, svc.DB, booking.ID, 50000, time.Now())
	seedPayment(t, svc.DB, booking.ID, 25000, time.Now())

	if err := svc.DeleteByStaff(booking.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var payments int64
	svc.DB.Model(&models.Payment{}).Where("booking_id = ?", booking.ID).Count(&payments)
	if payments != 0 {
		t.Errorf("%d payments survived the cascade", payments)
	}

	if err := svc.DeleteByStaff(booking.ID); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("double delete: got %v, want ErrBookingNotFound", err)
	}
}

func TestGetAllRecomputesTotals(t *testing.T) {
	svc, _ := newBookingService(t)
	staff := seedStaff(t, svc.DB, models.RoleAdmin)
	customer := seedCustomer(t, svc.DB, "Hari Sharma", "9841000001")

	in := bookingInput()
	in.CustomerID = customer.ID
	in.TotalAmount = 40000
	booking, err := svc.CreateByStaff(in, staff.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	seedPayment(t, svc.DB, booking.ID, 25000, time.Now())

	all, err := svc.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if all[0].PaidAmount != 25000 || all[0].Balance != 15000 {
		t.Errorf("paid=%v balance=%v, want 25000/15000", all[0].PaidAmount, all[0].Balance)
	}

	// Overpayment drives the balance negative; it is not clamped.
	seedPayment(t, svc.DB, booking.ID, 25000, time.Now())
	all, err = svc.GetAll()
	if err != nil {
		t.Fatalf("GetAll after overpayment: %v", err)
	}
	if all[0].PaidAmount != 50000 || all[0].Balance != -10000 {
		t.Errorf("paid=%v balance=%v, want 50000/-10000", all[0].PaidAmount, all[0].Balance)
	}
	if all[0].Customer == nil || all[0].Customer.Name != "Hari Sharma" {
		t.Error("customer association missing from joined view")
	}
	if all[0].Handler == nil || all[0].Handler.ID != staff.ID {
		t.Error("handler association missing from joined view")
	}
}

func TestCreateThenGetOneRoundTrip(t *testing.T) {
	svc, _ := newBookingService(t)
	owner := seedCustomer(t, svc.DB, "Hari Sharma", "9841000001")

	in := bookingInput()
	in.MealPlan = MealPlanInput{
		SlotLunch:  {Plan: "Standard Veg"},
		SlotSnack:  {Plan: "None"},
		SlotDinner: {Plan: "Deluxe Dinner Buffet"},
	}
	created, err := svc.CreateByCustomer(in, owner.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetOne(created.ID, middleware.Principal{ID: owner.ID, Role: middleware.RoleCustomer})
	if err != nil {
		t.Fatalf("GetOne as owner: %v", err)
	}
	if got.EventType != in.EventType || got.GuestCount != in.GuestCount {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if time.Time(got.EventDate).Format("2006-01-02") != in.EventDate {
		t.Errorf("eventDate = %v, want %s", time.Time(got.EventDate), in.EventDate)
	}

	var plan map[string]MealSelection
	if err := json.Unmarshal(got.MealPlan, &plan); err != nil {
		t.Fatalf("stored meal plan unreadable: %v", err)
	}
	if _, ok := plan[SlotSnack]; ok {
		t.Error("'None' snack slot should have been dropped")
	}
	if len(plan[SlotLunch].Items) == 0 || plan[SlotLunch].Plan != "Standard Veg" {
		t.Errorf("lunch selection not resolved: %+v", plan[SlotLunch])
	}
}

func TestGetOneOwnership(t *testing.T) {
	svc, _ := newBookingService(t)
	owner := seedCustomer(t, svc.DB, "Hari Sharma", "9841000001")
	stranger := seedCustomer(t, svc.DB, "Sita Rai", "9851000002")

	booking, err := svc.CreateByCustomer(bookingInput(), owner.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.GetOne(booking.ID, middleware.Principal{ID: stranger.ID, Role: middleware.RoleCustomer}); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign customer: got %v, want ErrForbidden", err)
	}
	if _, err := svc.GetOne(booking.ID, middleware.Principal{ID: 1, Role: models.RoleStaff}); err != nil {
		t.Errorf("staff should see any booking: %v", err)
	}
	if _, err := svc.GetOne(999, middleware.Principal{ID: 1, Role: models.RoleAdmin}); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("missing id: got %v, want ErrBookingNotFound", err)
	}
}

func TestGetForOwnerOrdersByEventDateDesc(t *testing.T) {
	svc, _ := newBookingService(t)
	owner := seedCustomer(t, svc.DB, "Hari Sharma", "9841000001")
	other := seedCustomer(t, svc.DB, "Sita Rai", "9851000002")

	for _, date := range []string{"2025-03-01", "2025-07-15", "2025-05-10"} {
		in := bookingInput()
		in.EventDate = date
		if _, err := svc.CreateByCustomer(in, owner.ID); err != nil {
			t.Fatalf("create %s: %v", date, err)
		}
	}
	if _, err := svc.CreateByCustomer(bookingInput(), other.ID); err != nil {
		t.Fatalf("create for other: %v", err)
	}

	bookings, err := svc.GetForOwner(owner.ID)
	if err != nil {
		t.Fatalf("GetForOwner: %v", err)
	}
	if len(bookings) != 3 {
		t.Fatalf("got %d bookings, want 3 (own only)", len(bookings))
	}
	want := []string{"2025-07-15", "2025-05-10", "2025-03-01"}
	for i, b := range bookings {
		if got := time.Time(b.EventDate).Format("2006-01-02"); got != want[i] {
			t.Errorf("bookings[%d].EventDate = %s, want %s", i, got, want[i])
		}
	}
}

func TestBookingInputValidation(t *testing.T) {
	svc, _ := newBookingService(t)
	owner := seedCustomer(t, svc.DB, "Hari Sharma", "9841000001")

	cases := []struct {
		name   string
		mutate func(*BookingInput)
	}{
		{"bad date", func(in *BookingInput) { in.EventDate = "01/06/2025" }},
		{"bad start time", func(in *BookingInput) { in.StartTime = "6pm" }},
		{"out of range hour", func(in *BookingInput) { in.EndTime = "25:00" }},
		{"zero guests", func(in *BookingInput) { in.GuestCount = 0 }},
		{"negative amount", func(in *BookingInput) { in.TotalAmount = -1 }},
		{"unknown meal plan", func(in *BookingInput) {
			in.MealPlan = MealPlanInput{SlotLunch: {Plan: "Imperial Feast"}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := bookingInput()
			tc.mutate(&in)
			if _, err := svc.CreateByCustomer(in, owner.ID); !errors.Is(err, ErrValidation) {
				t.Errorf("got %v, want ErrValidation", err)
			}
		})
	}

	t.Run("seconds are normalized away", func(t *testing.T) {
		in := bookingInput()
		in.StartTime = "18:00:00"
		in.EndTime = "22:30:00"
		booking, err := svc.CreateByCustomer(in, owner.ID)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if booking.StartTime != "18:00" || booking.EndTime != "22:30" {
			t.Errorf("times = %s-%s, want 18:00-22:30", booking.StartTime, booking.EndTime)
		}
	})
}
