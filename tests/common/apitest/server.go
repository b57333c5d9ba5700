//go:build unit || e2e

// Package apitest runs an in-process double of the futsal booking backend:
// the same routes, the same {status, message, data} envelope, the same
// cookie session and role gating. e2e tests point the real client at it.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"futsalku-client/internal/api/response"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type account struct {
	user     response.User
	password string
}

type slotRecord struct {
	slot    response.TimeSlot
	fieldID uuid.UUID
}

type Server struct {
	mu       sync.Mutex
	fields   map[uuid.UUID]response.Field
	slots    map[uuid.UUID]*slotRecord
	bookings map[uuid.UUID]*response.Booking
	accounts map[string]*account
	sessions map[string]uuid.UUID
	owners   map[uuid.UUID]uuid.UUID // booking -> user
	hits     map[string]int

	srv *httptest.Server
}

func NewServer(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		fields:   make(map[uuid.UUID]response.Field),
		slots:    make(map[uuid.UUID]*slotRecord),
		bookings: make(map[uuid.UUID]*response.Booking),
		accounts: make(map[string]*account),
		sessions: make(map[string]uuid.UUID),
		owners:   make(map[uuid.UUID]uuid.UUID),
		hits:     make(map[string]int),
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))
	router.Use(s.count)
	s.routes(router)

	s.srv = httptest.NewServer(router)
	t.Cleanup(s.srv.Close)
	return s
}

func (s *Server) URL() string { return s.srv.URL }

// Close shuts the listener down early. Safe to call before the
// t.Cleanup close runs again.
func (s *Server) Close() { s.srv.Close() }

// Hits reports how many requests matched "METHOD /path/prefix".
func (s *Server) Hits(method, prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for key, n := range s.hits {
		if len(key) >= len(method)+1+len(prefix) && key[:len(method)] == method &&
			key[len(method)+1:len(method)+1+len(prefix)] == prefix {
			total += n
		}
	}
	return total
}

func (s *Server) count(c *gin.Context) {
	s.mu.Lock()
	s.hits[c.Request.Method+" "+c.Request.URL.Path]++
	s.mu.Unlock()
	c.Next()
}

// ---- seeding -------------------------------------------------------------

func (s *Server) SeedUser(name, email, password, role string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.accounts[email] = &account{
		user:     response.User{ID: id, Name: name, Email: email, Role: role},
		password: password,
	}
	return id
}

func (s *Server) SeedField(name string, price int64) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.fields[id] = response.Field{ID: id, Name: name, Price: price, CreatedAt: time.Now().UTC()}
	return id
}

func (s *Server) SeedSlot(fieldID uuid.UUID, start time.Time, booked bool) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.slots[id] = &slotRecord{
		fieldID: fieldID,
		slot: response.TimeSlot{
			ID:        id,
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			Booked:    booked,
		},
	}
	return id
}

func (s *Server) SlotBooked(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.slots[id]
	return ok && rec.slot.Booked
}

func (s *Server) BookingStatus(id uuid.UUID) (response.BookingStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return "", false
	}
	return b.Status, true
}

// ---- envelope ------------------------------------------------------------

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "ok", "data": data})
}

func fail(c *gin.Context, status int, message any) {
	c.AbortWithStatusJSON(status, gin.H{"status": "error", "message": message, "data": nil})
}

// ---- auth ----------------------------------------------------------------

func (s *Server) currentUser(c *gin.Context) (response.User, bool) {
	token, err := c.Cookie("futsalku_session")
	if err != nil {
		return response.User{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.sessions[token]
	if !ok {
		return response.User{}, false
	}
	for _, acc := range s.accounts {
		if acc.user.ID == userID {
			return acc.user, true
		}
	}
	return response.User{}, false
}

func (s *Server) requireLogin(c *gin.Context) (response.User, bool) {
	user, ok := s.currentUser(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "silakan login terlebih dahulu")
	}
	return user, ok
}

func (s *Server) requireAdmin(c *gin.Context) (response.User, bool) {
	user, ok := s.requireLogin(c)
	if !ok {
		return user, false
	}
	if user.Role != response.RoleAdmin {
		fail(c, http.StatusForbidden, "akses khusus admin")
		return user, false
	}
	return user, true
}

// ---- routes --------------------------------------------------------------

func (s *Server) routes(r *gin.Engine) {
	r.POST("/user/login", s.handleLogin)
	r.POST("/user/register", s.handleRegister)
	r.POST("/user/logout", s.handleLogout)
	r.GET("/me", s.handleMe)

	r.GET("/field", s.handleListFields)
	r.GET("/field/:id", s.handleGetField)
	r.GET("/timeslot/:fieldId", s.handleListSlots)

	r.GET("/booking", s.handleListBookings)
	r.POST("/booking", s.handleCreateBooking)
	r.PATCH("/booking/:id/status", s.handleUpdateBookingStatus)

	r.GET("/stats/hero", s.handleHeroStats)

	r.POST("/admin/field", s.handleCreateField)
	r.PUT("/admin/field/:id", s.handleUpdateField)
	r.DELETE("/admin/field/:id", s.handleDeleteField)
	r.POST("/admin/timeslot/:fieldId", s.handleGenerateSlots)
	r.GET("/admin/admin", s.handleListAdmins)
	r.POST("/admin/create", s.handleCreateAdmin)
}

func (s *Server) handleLogin(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "format permintaan salah")
		return
	}

	s.mu.Lock()
	acc, ok := s.accounts[body.Email]
	if !ok || acc.password != body.Password {
		s.mu.Unlock()
		fail(c, http.StatusUnauthorized, "email atau password salah")
		return
	}
	token := uuid.NewString()
	s.sessions[token] = acc.user.ID
	s.mu.Unlock()

	c.SetCookie("futsalku_session", token, 3600, "/", "", false, true)
	respondOK(c, acc.user)
}

func (s *Server) handleRegister(c *gin.Context) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "format permintaan salah")
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[body.Email]; exists {
		s.mu.Unlock()
		fail(c, http.StatusBadRequest, gin.H{"email": "email sudah terdaftar"})
		return
	}
	user := response.User{ID: uuid.New(), Name: body.Name, Email: body.Email, Role: response.RoleUser}
	s.accounts[body.Email] = &account{user: user, password: body.Password}
	s.mu.Unlock()

	respondOK(c, user)
}

func (s *Server) handleLogout(c *gin.Context) {
	if token, err := c.Cookie("futsalku_session"); err == nil {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
	}
	c.SetCookie("futsalku_session", "", -1, "/", "", false, true)
	respondOK(c, nil)
}

func (s *Server) handleMe(c *gin.Context) {
	user, ok := s.requireLogin(c)
	if !ok {
		return
	}
	respondOK(c, user)
}

func (s *Server) handleListFields(c *gin.Context) {
	s.mu.Lock()
	fields := make([]response.Field, 0, len(s.fields))
	for _, f := range s.fields {
		fields = append(fields, f)
	}
	s.mu.Unlock()
	respondOK(c, fields)
}

func (s *Server) handleGetField(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "id tidak valid")
		return
	}

	s.mu.Lock()
	field, found := s.fields[id]
	if found {
		for _, rec := range s.slots {
			if rec.fieldID == id {
				field.Slots = append(field.Slots, rec.slot)
			}
		}
	}
	s.mu.Unlock()

	if !found {
		fail(c, http.StatusNotFound, "lapangan tidak ditemukan")
		return
	}
	respondOK(c, field)
}

func (s *Server) handleListSlots(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		fail(c, http.StatusBadRequest, "id tidak valid")
		return
	}

	s.mu.Lock()
	slots := make([]response.TimeSlot, 0)
	for _, rec := range s.slots {
		if rec.fieldID == fieldID {
			slots = append(slots, rec.slot)
		}
	}
	s.mu.Unlock()
	respondOK(c, slots)
}

func (s *Server) handleListBookings(c *gin.Context) {
	user, okUser := s.requireLogin(c)
	if !okUser {
		return
	}

	s.mu.Lock()
	bookings := make([]response.Booking, 0)
	for id, b := range s.bookings {
		if user.Role == response.RoleAdmin || s.owners[id] == user.ID {
			bookings = append(bookings, *b)
		}
	}
	s.mu.Unlock()
	respondOK(c, bookings)
}

func (s *Server) handleCreateBooking(c *gin.Context) {
	user, okUser := s.requireLogin(c)
	if !okUser {
		return
	}

	var body struct {
		FieldID uuid.UUID `json:"fieldId"`
		SlotID  uuid.UUID `json:"slotId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "format permintaan salah")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	field, fieldExists := s.fields[body.FieldID]
	rec, slotExists := s.slots[body.SlotID]
	if !fieldExists || !slotExists || rec.fieldID != body.FieldID {
		fail(c, http.StatusNotFound, "jadwal tidak ditemukan")
		return
	}
	if rec.slot.Booked {
		fail(c, http.StatusBadRequest, gin.H{"slotId": "jadwal sudah dipesan"})
		return
	}

	booking := &response.Booking{
		ID:         uuid.New(),
		Status:     response.BookingPending,
		TotalPrice: field.Price,
		CreatedAt:  time.Now().UTC(),
		User:       response.BookingUser{Name: user.Name, Email: user.Email},
		Field:      response.BookingField{Name: field.Name, Price: field.Price},
		Slot:       response.BookingSlot{StartTime: rec.slot.StartTime, EndTime: rec.slot.EndTime},
	}
	rec.slot.Booked = true
	bid := booking.ID
	rec.slot.BookingID = &bid
	s.bookings[booking.ID] = booking
	s.owners[booking.ID] = user.ID

	respondOK(c, booking)
}

func (s *Server) handleUpdateBookingStatus(c *gin.Context) {
	user, okUser := s.requireLogin(c)
	if !okUser {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "id tidak valid")
		return
	}
	var body struct {
		Status response.BookingStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "format permintaan salah")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	booking, found := s.bookings[id]
	if !found || (user.Role != response.RoleAdmin && s.owners[id] != user.ID) {
		fail(c, http.StatusNotFound, "booking tidak ditemukan")
		return
	}
	if body.Status == response.BookingConfirmed && user.Role != response.RoleAdmin {
		fail(c, http.StatusForbidden, "akses khusus admin")
		return
	}
	if !booking.Status.CanTransitionTo(body.Status) {
		fail(c, http.StatusBadRequest, gin.H{
			"status": fmt.Sprintf("booking sudah %s", booking.Status),
		})
		return
	}

	booking.Status = body.Status
	if body.Status == response.BookingCancelled {
		for _, rec := range s.slots {
			if rec.slot.BookingID != nil && *rec.slot.BookingID == id {
				rec.slot.Booked = false
				rec.slot.BookingID = nil
			}
		}
	}
	respondOK(c, booking)
}

func (s *Server) handleHeroStats(c *gin.Context) {
	s.mu.Lock()
	stats := response.HeroStats{
		TotalFields:   len(s.fields),
		TotalBookings: len(s.bookings),
		TotalUsers:    len(s.accounts),
	}
	s.mu.Unlock()
	respondOK(c, stats)
}

func (s *Server) handleCreateField(c *gin.Context) {
	if _, okAdmin := s.requireAdmin(c); !okAdmin {
		return
	}

	name := c.PostForm("name")
	price, err := strconv.ParseInt(c.PostForm("price"), 10, 64)
	if name == "" || err != nil || price <= 0 {
		fail(c, http.StatusBadRequest, gin.H{"name": "nama wajib diisi", "price": "harga tidak valid"})
		return
	}

	field := response.Field{ID: uuid.New(), Name: name, Price: price, CreatedAt: time.Now().UTC()}
	if desc := c.PostForm("description"); desc != "" {
		field.Description = &desc
	}
	if file, err := c.FormFile("image"); err == nil {
		img := "/uploads/" + file.Filename
		field.Image = &img
	}

	s.mu.Lock()
	s.fields[field.ID] = field
	s.mu.Unlock()
	respondOK(c, field)
}

func (s *Server) handleUpdateField(c *gin.Context) {
	if _, okAdmin := s.requireAdmin(c); !okAdmin {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "id tidak valid")
		return
	}

	s.mu.Lock()
	field, found := s.fields[id]
	s.mu.Unlock()
	if !found {
		fail(c, http.StatusNotFound, "lapangan tidak ditemukan")
		return
	}

	if name := c.PostForm("name"); name != "" {
		field.Name = name
	}
	if priceStr := c.PostForm("price"); priceStr != "" {
		if price, err := strconv.ParseInt(priceStr, 10, 64); err == nil {
			field.Price = price
		}
	}
	if desc := c.PostForm("description"); desc != "" {
		field.Description = &desc
	}

	s.mu.Lock()
	s.fields[id] = field
	s.mu.Unlock()
	respondOK(c, field)
}

func (s *Server) handleDeleteField(c *gin.Context) {
	if _, okAdmin := s.requireAdmin(c); !okAdmin {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "id tidak valid")
		return
	}

	s.mu.Lock()
	_, found := s.fields[id]
	delete(s.fields, id)
	for slotID, rec := range s.slots {
		if rec.fieldID == id {
			delete(s.slots, slotID)
		}
	}
	s.mu.Unlock()

	if !found {
		fail(c, http.StatusNotFound, "lapangan tidak ditemukan")
		return
	}
	respondOK(c, nil)
}

func (s *Server) handleGenerateSlots(c *gin.Context) {
	if _, okAdmin := s.requireAdmin(c); !okAdmin {
		return
	}

	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		fail(c, http.StatusBadRequest, "id tidak valid")
		return
	}
	var body struct {
		Date      string `json:"date"`
		StartHour int    `json:"startHour"`
		EndHour   int    `json:"endHour"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "format permintaan salah")
		return
	}
	day, err := time.Parse(time.DateOnly, body.Date)
	if err != nil || body.EndHour <= body.StartHour {
		fail(c, http.StatusBadRequest, gin.H{"date": "tanggal atau jam tidak valid"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.fields[fieldID]; !found {
		fail(c, http.StatusNotFound, "lapangan tidak ditemukan")
		return
	}

	created := make([]response.TimeSlot, 0, body.EndHour-body.StartHour)
	for hour := body.StartHour; hour < body.EndHour; hour++ {
		start := day.Add(time.Duration(hour) * time.Hour)
		slot := response.TimeSlot{
			ID:        uuid.New(),
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		}
		s.slots[slot.ID] = &slotRecord{fieldID: fieldID, slot: slot}
		created = append(created, slot)
	}
	respondOK(c, created)
}

func (s *Server) handleListAdmins(c *gin.Context) {
	if _, okAdmin := s.requireAdmin(c); !okAdmin {
		return
	}

	s.mu.Lock()
	admins := make([]response.User, 0)
	for _, acc := range s.accounts {
		if acc.user.Role == response.RoleAdmin {
			admins = append(admins, acc.user)
		}
	}
	s.mu.Unlock()
	respondOK(c, admins)
}

func (s *Server) handleCreateAdmin(c *gin.Context) {
	if _, okAdmin := s.requireAdmin(c); !okAdmin {
		return
	}

	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "format permintaan salah")
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[body.Email]; exists {
		s.mu.Unlock()
		fail(c, http.StatusBadRequest, gin.H{"email": "email sudah terdaftar"})
		return
	}
	admin := response.User{ID: uuid.New(), Name: body.Name, Email: body.Email, Role: response.RoleAdmin}
	s.accounts[body.Email] = &account{user: admin, password: body.Password}
	s.mu.Unlock()
	respondOK(c, admin)
}
