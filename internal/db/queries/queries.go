package queries

// User queries
const (
	CreateUser = `
		INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	GetUserByID = `
		SELECT id, name, email, password_hash, role, mfa_enabled, mfa_secret, created_at, updated_at
		FROM users
		WHERE id = $1`

	GetUserByEmail = `
		SELECT id, name, email, password_hash, role, mfa_enabled, mfa_secret, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)`

	CountUsers = `SELECT COUNT(*) FROM users`

	UpdateUserMFA = `
		UPDATE users SET
			mfa_enabled = $2,
			mfa_secret = $3,
			updated_at = NOW()
		WHERE id = $1`
)

// Auth token queries
const (
	StoreToken = `
		INSERT INTO auth_tokens (token, user_id, created_at, expires_at)
		VALUES ($1, $2, NOW(), $3)`

	TokenExists = `
		SELECT EXISTS(SELECT 1 FROM auth_tokens WHERE token = $1 AND expires_at > NOW())`

	RemoveToken = `DELETE FROM auth_tokens WHERE token = $1`

	RemoveUserTokens = `DELETE FROM auth_tokens WHERE user_id = $1`

	PurgeExpiredTokens = `DELETE FROM auth_tokens WHERE expires_at <= NOW()`
)

// Project queries
const (
	projectColumns = `
			id, title, category, description, detailed_description, image, images,
			technologies, url, client, status, featured, created_at, updated_at`

	CreateProject = `
		INSERT INTO projects (` + projectColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	GetProjectByID = `SELECT` + projectColumns + ` FROM projects WHERE id = $1`

	ListProjects = `SELECT` + projectColumns + ` FROM projects ORDER BY created_at ASC`

	UpdateProject = `
		UPDATE projects SET
			title = $2, category = $3, description = $4, detailed_description = $5,
			image = $6, images = $7, technologies = $8, url = $9, client = $10,
			status = $11, featured = $12, updated_at = $13
		WHERE id = $1`

	DeleteProject = `DELETE FROM projects WHERE id = $1`

	CountProjectsCreatedBetween = `
		SELECT COUNT(*) FROM projects WHERE created_at >= $1 AND created_at < $2`

	CountProjects = `SELECT COUNT(*) FROM projects`
)

// Case study queries
const (
	caseStudyColumns = `
			id, title, client, industry, overview, challenge, solution, results,
			testimonial, testimonial_author, testimonial_role, images, technologies,
			timeline, team_size, metrics, featured, status, created_at, updated_at`

	CreateCaseStudy = `
		INSERT INTO case_studies (` + caseStudyColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	GetCaseStudyByID = `SELECT` + caseStudyColumns + ` FROM case_studies WHERE id = $1`

	ListCaseStudies = `SELECT` + caseStudyColumns + ` FROM case_studies ORDER BY created_at ASC`

	ListCaseStudiesByStatus = `SELECT` + caseStudyColumns + `
		FROM case_studies WHERE status = $1 ORDER BY created_at ASC`

	UpdateCaseStudy = `
		UPDATE case_studies SET
			title = $2, client = $3, industry = $4, overview = $5, challenge = $6,
			solution = $7, results = $8, testimonial = $9, testimonial_author = $10,
			testimonial_role = $11, images = $12, technologies = $13, timeline = $14,
			team_size = $15, metrics = $16, featured = $17, status = $18, updated_at = $19
		WHERE id = $1`

	DeleteCaseStudy = `DELETE FROM case_studies WHERE id = $1`
)

// Enquiry queries
const (
	enquiryColumns = `
			id, name, email, subject, message, service, status, notes, created_at, updated_at`

	CreateEnquiry = `
		INSERT INTO enquiries (` + enquiryColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	GetEnquiryByID = `SELECT` + enquiryColumns + ` FROM enquiries WHERE id = $1`

	ListEnquiries = `SELECT` + enquiryColumns + ` FROM enquiries ORDER BY created_at DESC`

	UpdateEnquiryStatus = `
		UPDATE enquiries SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING` + enquiryColumns

	UpdateEnquiryNotes = `
		UPDATE enquiries SET notes = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING` + enquiryColumns

	DeleteEnquiry = `DELETE FROM enquiries WHERE id = $1`

	CountEnquiriesBetween = `
		SELECT COUNT(*) FROM enquiries
		WHERE status <> 'spam' AND created_at >= $1 AND created_at < $2`

	CountEnquiriesByService = `
		SELECT COALESCE(NULLIF(service, ''), 'other') AS service, COUNT(*)
		FROM enquiries
		WHERE status <> 'spam' AND created_at >= $1 AND created_at < $2
		GROUP BY 1
		ORDER BY 2 DESC, 1 ASC`

	PurgeSpamEnquiries = `
		DELETE FROM enquiries WHERE status = 'spam' AND created_at < $1`
)

// Site content queries
const (
	GetContent = `SELECT content FROM site_content WHERE key = $1`

	UpsertContent = `
		INSERT INTO site_content (key, content, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			content = EXCLUDED.content,
			updated_at = NOW()`
)

// Page visit queries
const (
	RecordVisit = `
		INSERT INTO page_visits (day, path, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (day, path) DO UPDATE SET count = page_visits.count + 1`

	SumVisitsBetween = `
		SELECT COALESCE(SUM(count), 0) FROM page_visits WHERE day >= $1 AND day < $2`

	DailyVisitsBetween = `
		SELECT day, SUM(count) FROM page_visits
		WHERE day >= $1 AND day < $2
		GROUP BY day
		ORDER BY day ASC`

	PurgeVisitsBefore = `DELETE FROM page_visits WHERE day < $1`
)
