package handler

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/database"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/middleware"
	model "github.com/canakboyraz/sport-buddy-app-sub000/internal/models"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/scanner"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/utils"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const sessionColumns = `s.id, s.creator_id, s.sport, s.title, s.description, s.session_date,
	s.latitude, s.longitude, s.location_text, s.city, s.capacity, s.skill_level, s.status,
	(SELECT COUNT(*) FROM join_requests jr WHERE jr.session_id = s.id AND jr.status = 'approved') AS participant_count,
	s.created_at, s.updated_at`

// CreateSportSession crée une session sportive. Titre et description
// passent par la modération avant insertion.
func CreateSportSession(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload struct {
		Sport        string  `json:"sport"`
		Title        string  `json:"title"`
		Description  string  `json:"description,omitempty"`
		SessionDate  string  `json:"sessionDate"`
		Latitude     float64 `json:"latitude"`
		Longitude    float64 `json:"longitude"`
		LocationText string  `json:"locationText"`
		City         string  `json:"city"`
		Capacity     int     `json:"capacity"`
		SkillLevel   string  `json:"skillLevel,omitempty"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	titleResult := moderator.ModerateSessionTitle(payload.Title)
	if !titleResult.IsAllowed {
		utils.ErrorSimple(w, http.StatusBadRequest, titleResult.Reason)
		return
	}

	descResult := moderator.ModerateSessionDescription(payload.Description)
	if !descResult.IsAllowed {
		utils.ErrorSimple(w, http.StatusBadRequest, descResult.Reason)
		return
	}

	if payload.Sport == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "sport is required")
		return
	}
	if payload.Capacity < 2 || payload.Capacity > 50 {
		utils.ErrorSimple(w, http.StatusBadRequest, "capacity must be between 2 and 50")
		return
	}

	sessionDate, err := time.Parse(time.RFC3339, payload.SessionDate)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "sessionDate must be RFC3339", err)
		return
	}
	if sessionDate.Before(time.Now()) {
		utils.ErrorSimple(w, http.StatusBadRequest, "sessionDate must be in the future")
		return
	}

	ctx := context.Background()

	row := database.DB.QueryRow(ctx,
		`INSERT INTO sport_sessions(creator_id, sport, title, description, session_date,
			latitude, longitude, location_text, city, capacity, skill_level, status,
			created_at, updated_at, created_by)
		 VALUES($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, NULLIF($11, ''), 'open', NOW(), NOW(), $1)
		 RETURNING id, creator_id, sport, title, description, session_date,
			latitude, longitude, location_text, city, capacity, skill_level, status,
			0 AS participant_count, created_at, updated_at`,
		user.ID, payload.Sport, titleResult.FilteredContent, descResult.FilteredContent,
		sessionDate, payload.Latitude, payload.Longitude, payload.LocationText,
		payload.City, payload.Capacity, payload.SkillLevel,
	)

	session, err := scanner.ScanSportSession(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, session)
}

// GetSportSessions liste les sessions avec filtres optionnels
// (sport, city, status, limit)
func GetSportSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 50
	if l, err := strconv.Atoi(query.Get("limit")); err == nil && l > 0 && l <= 200 {
		limit = l
	}

	sqlQuery := `SELECT ` + sessionColumns + `
		 FROM sport_sessions s
		 WHERE s.deleted_at IS NULL`
	args := []interface{}{}
	argPos := 1

	if sport := query.Get("sport"); sport != "" {
		sqlQuery += ` AND s.sport = $` + strconv.Itoa(argPos)
		args = append(args, sport)
		argPos++
	}
	if city := query.Get("city"); city != "" {
		sqlQuery += ` AND s.city = $` + strconv.Itoa(argPos)
		args = append(args, city)
		argPos++
	}
	if status := query.Get("status"); status != "" {
		sqlQuery += ` AND s.status = $` + strconv.Itoa(argPos)
		args = append(args, status)
		argPos++
	} else {
		sqlQuery += ` AND s.session_date > NOW() AND s.status IN ('open', 'full')`
	}

	sqlQuery += ` ORDER BY s.session_date ASC LIMIT $` + strconv.Itoa(argPos)
	args = append(args, limit)

	rows, err := database.DB.Query(context.Background(), sqlQuery, args...)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query sessions", err)
		return
	}
	defer rows.Close()

	sessions := []model.SportSession{}
	for rows.Next() {
		session, err := scanner.ScanSportSession(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan session row", err)
			return
		}
		sessions = append(sessions, *session)
	}

	utils.Success(w, sessions)
}

// GetSportSessionById récupère une session avec les infos du créateur
func GetSportSessionById(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	ctx := context.Background()

	row := database.DB.QueryRow(ctx,
		`SELECT `+sessionColumns+`
		 FROM sport_sessions s
		 WHERE s.id=$1 AND s.deleted_at IS NULL`,
		sessionID,
	)

	session, err := scanner.ScanSportSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.ErrorSimple(w, http.StatusNotFound, utils.MsgSessionNotFound)
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not fetch session", err)
		return
	}

	var creator model.UserCreator
	err = database.DB.QueryRow(ctx,
		`SELECT id, name, COALESCE(avatar, '') FROM profiles WHERE id=$1`,
		session.CreatorID,
	).Scan(&creator.ID, &creator.Name, &creator.Avatar)
	if err == nil {
		session.Creator = &creator
	}

	utils.Success(w, session)
}

// UpdateSportSession met à jour une session (créateur uniquement)
func UpdateSportSession(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sessionID := mux.Vars(r)["id"]

	var payload struct {
		Title       *string `json:"title,omitempty"`
		Description *string `json:"description,omitempty"`
		SessionDate *string `json:"sessionDate,omitempty"`
		Capacity    *int    `json:"capacity,omitempty"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	ctx := context.Background()

	row := database.DB.QueryRow(ctx,
		`SELECT `+sessionColumns+`
		 FROM sport_sessions s WHERE s.id=$1 AND s.deleted_at IS NULL`,
		sessionID,
	)
	session, err := scanner.ScanSportSession(row)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, utils.MsgSessionNotFound)
		return
	}
	if session.CreatorID != user.ID {
		utils.ErrorSimple(w, http.StatusForbidden, "only the creator can update this session")
		return
	}

	title := session.Title
	if payload.Title != nil {
		result := moderator.ModerateSessionTitle(*payload.Title)
		if !result.IsAllowed {
			utils.ErrorSimple(w, http.StatusBadRequest, result.Reason)
			return
		}
		title = result.FilteredContent
	}

	description := utils.NullStringToString(session.Description)
	if payload.Description != nil {
		result := moderator.ModerateSessionDescription(*payload.Description)
		if !result.IsAllowed {
			utils.ErrorSimple(w, http.StatusBadRequest, result.Reason)
			return
		}
		description = result.FilteredContent
	}

	sessionDate := session.SessionDate
	if payload.SessionDate != nil {
		parsed, err := time.Parse(time.RFC3339, *payload.SessionDate)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "sessionDate must be RFC3339", err)
			return
		}
		sessionDate = parsed
	}

	capacity := session.Capacity
	if payload.Capacity != nil {
		if *payload.Capacity < 2 || *payload.Capacity > 50 {
			utils.ErrorSimple(w, http.StatusBadRequest, "capacity must be between 2 and 50")
			return
		}
		capacity = *payload.Capacity
	}

	_, err = database.DB.Exec(ctx,
		`UPDATE sport_sessions
		 SET title=$2, description=NULLIF($3, ''), session_date=$4, capacity=$5,
			 updated_at=NOW(), updated_by=$6
		 WHERE id=$1 AND deleted_at IS NULL`,
		sessionID, title, description, sessionDate, capacity, user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update session", err)
		return
	}

	utils.Message(w, "session updated")
}

// CancelSportSession annule une session (créateur uniquement)
func CancelSportSession(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sessionID := mux.Vars(r)["id"]

	res, err := database.DB.Exec(context.Background(),
		`UPDATE sport_sessions
		 SET status='cancelled', updated_at=NOW(), updated_by=$2
		 WHERE id=$1 AND creator_id=$2 AND status IN ('open', 'full') AND deleted_at IS NULL`,
		sessionID, user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not cancel session", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "session not found, already finished, or not yours")
		return
	}

	utils.Message(w, "session cancelled")
}

// JoinSession dépose une demande de participation (pending)
func JoinSession(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sessionID := mux.Vars(r)["id"]
	ctx := context.Background()

	row := database.DB.QueryRow(ctx,
		`SELECT `+sessionColumns+`
		 FROM sport_sessions s WHERE s.id=$1 AND s.deleted_at IS NULL`,
		sessionID,
	)
	session, err := scanner.ScanSportSession(row)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, utils.MsgSessionNotFound)
		return
	}

	if session.CreatorID == user.ID {
		utils.ErrorSimple(w, http.StatusBadRequest, "you cannot join your own session")
		return
	}
	if session.Status != model.SessionOpen {
		utils.ErrorSimple(w, http.StatusBadRequest, "this session is not open for new players")
		return
	}

	_, err = database.DB.Exec(ctx,
		`INSERT INTO join_requests(session_id, user_id, status, created_at, updated_at)
		 VALUES($1, $2, 'pending', NOW(), NOW())`,
		sessionID, user.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			utils.ErrorSimple(w, http.StatusConflict, "you already requested to join this session")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not create join request", err)
		return
	}

	// notifier le créateur (best-effort)
	go notifySessionCreator(session.CreatorID, user.Name, session.Title)

	utils.Message(w, "join request sent")
}

// GetJoinRequests liste les demandes en attente (créateur uniquement)
func GetJoinRequests(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sessionID := mux.Vars(r)["id"]
	ctx := context.Background()

	var creatorID string
	err = database.DB.QueryRow(ctx,
		`SELECT creator_id FROM sport_sessions WHERE id=$1 AND deleted_at IS NULL`,
		sessionID,
	).Scan(&creatorID)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, utils.MsgSessionNotFound)
		return
	}
	if creatorID != user.ID {
		utils.ErrorSimple(w, http.StatusForbidden, "only the creator can list join requests")
		return
	}

	rows, err := database.DB.Query(ctx,
		`SELECT jr.id, jr.session_id, jr.user_id, jr.status, jr.created_at, jr.updated_at,
			p.name, COALESCE(p.avatar, '')
		 FROM join_requests jr
		 INNER JOIN profiles p ON p.id = jr.user_id
		 WHERE jr.session_id=$1 AND jr.status='pending' AND p.deleted_at IS NULL
		 ORDER BY jr.created_at`,
		sessionID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query join requests", err)
		return
	}
	defer rows.Close()

	requests := []model.JoinRequest{}
	for rows.Next() {
		var jr model.JoinRequest
		if err := rows.Scan(&jr.ID, &jr.SessionID, &jr.UserID, &jr.Status,
			&jr.CreatedAt, &jr.UpdatedAt, &jr.UserName, &jr.UserAvatar); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan join request row", err)
			return
		}
		requests = append(requests, jr)
	}

	utils.Success(w, requests)
}

// HandleJoinRequest approuve ou rejette une demande (créateur uniquement).
// Quand la capacité est atteinte, la session passe en 'full'.
func HandleJoinRequest(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	vars := mux.Vars(r)
	sessionID := vars["id"]
	requestID := vars["requestId"]

	var payload struct {
		Action string `json:"action"` // approve | reject
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if payload.Action != "approve" && payload.Action != "reject" {
		utils.ErrorSimple(w, http.StatusBadRequest, "action must be approve or reject")
		return
	}

	ctx := context.Background()

	tx, err := database.DB.Begin(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not handle join request", err)
		return
	}
	defer tx.Rollback(ctx)

	var creatorID string
	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT creator_id, capacity FROM sport_sessions
		 WHERE id=$1 AND deleted_at IS NULL FOR UPDATE`,
		sessionID,
	).Scan(&creatorID, &capacity)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, utils.MsgSessionNotFound)
		return
	}
	if creatorID != user.ID {
		utils.ErrorSimple(w, http.StatusForbidden, "only the creator can handle join requests")
		return
	}

	newStatus := model.JoinApproved
	if payload.Action == "reject" {
		newStatus = model.JoinRejected
	}

	res, err := tx.Exec(ctx,
		`UPDATE join_requests SET status=$3, updated_at=NOW()
		 WHERE id=$1 AND session_id=$2 AND status='pending'`,
		requestID, sessionID, newStatus,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update join request", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "pending join request not found")
		return
	}

	if newStatus == model.JoinApproved {
		var approved int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM join_requests WHERE session_id=$1 AND status='approved'`,
			sessionID,
		).Scan(&approved)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not count participants", err)
			return
		}

		if approved >= capacity {
			_, err = tx.Exec(ctx,
				`UPDATE sport_sessions SET status='full', updated_at=NOW() WHERE id=$1 AND status='open'`,
				sessionID,
			)
			if err != nil {
				utils.Error(w, http.StatusInternalServerError, "could not update session status", err)
				return
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not handle join request", err)
		return
	}

	utils.Message(w, "join request "+payload.Action+"d")
}

// LeaveSession retire l'utilisateur d'une session. Si la session était
// pleine, elle repasse en 'open'.
func LeaveSession(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sessionID := mux.Vars(r)["id"]
	ctx := context.Background()

	tx, err := database.DB.Begin(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not leave session", err)
		return
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx,
		`DELETE FROM join_requests WHERE session_id=$1 AND user_id=$2`,
		sessionID, user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not leave session", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "you are not part of this session")
		return
	}

	_, err = tx.Exec(ctx,
		`UPDATE sport_sessions SET status='open', updated_at=NOW()
		 WHERE id=$1 AND status='full'`,
		sessionID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update session status", err)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not leave session", err)
		return
	}

	utils.Message(w, "left session")
}

// GenerateRecurringSessions clone une session chaque semaine (max 12)
func GenerateRecurringSessions(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sessionID := mux.Vars(r)["id"]

	var payload struct {
		Weeks int `json:"weeks"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if payload.Weeks < 1 || payload.Weeks > 12 {
		utils.ErrorSimple(w, http.StatusBadRequest, "weeks must be between 1 and 12")
		return
	}

	ctx := context.Background()

	row := database.DB.QueryRow(ctx,
		`SELECT `+sessionColumns+`
		 FROM sport_sessions s WHERE s.id=$1 AND s.deleted_at IS NULL`,
		sessionID,
	)
	session, err := scanner.ScanSportSession(row)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, utils.MsgSessionNotFound)
		return
	}
	if session.CreatorID != user.ID {
		utils.ErrorSimple(w, http.StatusForbidden, "only the creator can generate recurring sessions")
		return
	}

	created := []string{}
	for week := 1; week <= payload.Weeks; week++ {
		var newID string
		err := database.DB.QueryRow(ctx,
			`INSERT INTO sport_sessions(creator_id, sport, title, description, session_date,
				latitude, longitude, location_text, city, capacity, skill_level, status,
				created_at, updated_at, created_by)
			 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'open', NOW(), NOW(), $1)
			 RETURNING id`,
			session.CreatorID, session.Sport, session.Title, session.Description,
			session.SessionDate.AddDate(0, 0, 7*week),
			session.Latitude, session.Longitude, session.LocationText, session.City,
			session.Capacity, session.SkillLevel,
		).Scan(&newID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not generate recurring sessions", err)
			return
		}
		created = append(created, newID)
	}

	utils.Success(w, map[string]interface{}{
		"sessionIds": created,
		"count":      len(created),
	})
}

// GetRecommendedSessions classe les sessions ouvertes à venir par score
// de pertinence pour l'utilisateur connecté
func GetRecommendedSessions(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	query := r.URL.Query()
	lat, _ := strconv.ParseFloat(query.Get("lat"), 64)
	lon, _ := strconv.ParseFloat(query.Get("lon"), 64)

	limit := 20
	if l, err := strconv.Atoi(query.Get("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	ctx := context.Background()

	rows, err := database.DB.Query(ctx,
		`SELECT `+sessionColumns+`
		 FROM sport_sessions s
		 WHERE s.deleted_at IS NULL
			AND s.status='open'
			AND s.session_date > NOW()
			AND s.creator_id <> $1
		 ORDER BY s.session_date ASC
		 LIMIT 200`,
		user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query sessions", err)
		return
	}
	defer rows.Close()

	now := time.Now()
	matches := []model.SessionMatch{}
	for rows.Next() {
		session, err := scanner.ScanSportSession(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan session row", err)
			return
		}
		matches = append(matches, model.SessionMatch{
			Session: *session,
			Score:   utils.SessionMatchScore(user, lat, lon, *session, now),
		})
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > limit {
		matches = matches[:limit]
	}

	utils.Success(w, matches)
}

// notifySessionCreator envoie une push au créateur quand quelqu'un
// demande à rejoindre sa session. Fire-and-forget.
func notifySessionCreator(creatorID, requesterName, sessionTitle string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var pushToken string
	err := database.DB.QueryRow(ctx,
		`SELECT COALESCE(push_token, '') FROM profiles WHERE id=$1 AND deleted_at IS NULL`,
		creatorID,
	).Scan(&pushToken)
	if err != nil || pushToken == "" {
		return
	}

	body := requesterName + " \"" + sessionTitle + "\" seansına katılmak istiyor"
	if assistantSvc != nil && assistantSvc.Enabled() {
		if text, err := assistantSvc.NotificationText(ctx,
			requesterName+" adlı kullanıcı "+sessionTitle+" seansına katılmak istiyor"); err == nil {
			body = text
		}
	}

	if pushSvc != nil {
		if err := pushSvc.SendPush(ctx, pushToken, "Yeni katılım isteği", body, nil); err != nil {
			utils.LogError("push notification failed: %v", err)
		}
	}
}
