package database

import "context"

// schemaStatements bootstrap the HRM schema. All statements are idempotent
// (IF NOT EXISTS / INSERT IGNORE) so a restart against an initialized
// database is harmless.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS user_roles (
		id TINYINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(20) NOT NULL UNIQUE,
		sort_order TINYINT NOT NULL DEFAULT 0
	)`,

	`INSERT IGNORE INTO user_roles (id, name, sort_order) VALUES
		(1, 'hr_staff', 1),
		(2, 'employee', 2)`,

	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role_id TINYINT UNSIGNED NOT NULL,
		totp_secret VARCHAR(64),
		totp_enabled BOOLEAN NOT NULL DEFAULT FALSE,

		CONSTRAINT fk_users_role_id
			FOREIGN KEY (role_id) REFERENCES user_roles(id)
			ON UPDATE CASCADE
			ON DELETE RESTRICT
	)`,

	`CREATE TABLE IF NOT EXISTS employees (
		id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		first_name VARCHAR(255) NOT NULL,
		last_name VARCHAR(255) NOT NULL,
		ic_passport VARCHAR(255) NOT NULL UNIQUE,

		CONSTRAINT fk_employees_user_id
			FOREIGN KEY (user_id) REFERENCES users(id)
			ON UPDATE CASCADE
			ON DELETE RESTRICT
	)`,

	`CREATE TABLE IF NOT EXISTS sessions (
		token_hash CHAR(64) PRIMARY KEY,
		user_id INT NOT NULL,
		expires_at DATETIME NOT NULL,

		CONSTRAINT fk_sessions_user_id
			FOREIGN KEY (user_id) REFERENCES users(id)
			ON UPDATE CASCADE
			ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS leave_application_types (
		id TINYINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(20) NOT NULL UNIQUE,
		sort_order TINYINT NOT NULL DEFAULT 0
	)`,

	`INSERT IGNORE INTO leave_application_types (id, name, sort_order) VALUES
		(1, 'annual', 1),
		(2, 'sick', 2),
		(3, 'unpaid', 3)`,

	`CREATE TABLE IF NOT EXISTS leave_application_statuses (
		id TINYINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(20) NOT NULL UNIQUE,
		sort_order TINYINT NOT NULL DEFAULT 0
	)`,

	`INSERT IGNORE INTO leave_application_statuses (id, name, sort_order) VALUES
		(1, 'pending', 1),
		(2, 'approved', 2),
		(3, 'rejected', 3)`,

	`CREATE TABLE IF NOT EXISTS leave_applications (
		id INT AUTO_INCREMENT PRIMARY KEY,
		employee_id INT NOT NULL,
		start_date_time DATETIME NOT NULL,
		end_date_time DATETIME NOT NULL,
		type_id TINYINT UNSIGNED NOT NULL,
		status_id TINYINT UNSIGNED NOT NULL,
		reason TEXT,

		CONSTRAINT fk_leave_applications_employee_id
			FOREIGN KEY (employee_id) REFERENCES employees(id)
			ON UPDATE CASCADE
			ON DELETE CASCADE,

		CONSTRAINT fk_leave_applications_type_id
			FOREIGN KEY (type_id) REFERENCES leave_application_types(id)
			ON UPDATE CASCADE
			ON DELETE RESTRICT,

		CONSTRAINT fk_leave_applications_status_id
			FOREIGN KEY (status_id) REFERENCES leave_application_statuses(id)
			ON UPDATE CASCADE
			ON DELETE RESTRICT
	)`,

	`CREATE TABLE IF NOT EXISTS training_courses (
		id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT,
		duration_in_hours INT,
		department VARCHAR(255),
		capacity INT NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS course_enrollments (
		id INT AUTO_INCREMENT PRIMARY KEY,
		course_id INT NOT NULL,
		employee_id INT NOT NULL,
		enrolled_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,

		UNIQUE KEY uq_course_enrollments (course_id, employee_id),

		CONSTRAINT fk_course_enrollments_course_id
			FOREIGN KEY (course_id) REFERENCES training_courses(id)
			ON UPDATE CASCADE
			ON DELETE CASCADE,

		CONSTRAINT fk_course_enrollments_employee_id
			FOREIGN KEY (employee_id) REFERENCES employees(id)
			ON UPDATE CASCADE
			ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS benefit_plans (
		id INT AUTO_INCREMENT PRIMARY KEY,
		plan_name VARCHAR(255) NOT NULL,
		provider VARCHAR(255),
		description TEXT,
		cost_per_month DECIMAL(10, 2)
	)`,

	`CREATE TABLE IF NOT EXISTS job_opening_statuses (
		id TINYINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(20) NOT NULL UNIQUE,
		sort_order TINYINT NOT NULL DEFAULT 0
	)`,

	`INSERT IGNORE INTO job_opening_statuses (id, name, sort_order) VALUES
		(1, 'open', 1),
		(2, 'closed', 2),
		(3, 'on_hold', 3)`,

	`CREATE TABLE IF NOT EXISTS job_openings (
		id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT,
		department VARCHAR(255),
		status_id TINYINT UNSIGNED NOT NULL,

		CONSTRAINT fk_job_openings_status_id
			FOREIGN KEY (status_id) REFERENCES job_opening_statuses(id)
			ON UPDATE CASCADE
			ON DELETE RESTRICT
	)`,

	`CREATE TABLE IF NOT EXISTS applicant_statuses (
		id TINYINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(20) NOT NULL UNIQUE,
		sort_order TINYINT NOT NULL DEFAULT 0
	)`,

	`INSERT IGNORE INTO applicant_statuses (id, name, sort_order) VALUES
		(1, 'new', 1),
		(2, 'screening', 2),
		(3, 'interviewing', 3),
		(4, 'offered', 4),
		(5, 'hired', 5),
		(6, 'rejected', 6)`,

	`CREATE TABLE IF NOT EXISTS applicants (
		id INT AUTO_INCREMENT PRIMARY KEY,
		job_opening_id INT NOT NULL,
		full_name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(50),
		status_id TINYINT UNSIGNED NOT NULL,

		CONSTRAINT fk_applicants_job_opening_id
			FOREIGN KEY (job_opening_id) REFERENCES job_openings(id)
			ON UPDATE CASCADE
			ON DELETE CASCADE,

		CONSTRAINT fk_applicants_status_id
			FOREIGN KEY (status_id) REFERENCES applicant_statuses(id)
			ON UPDATE CASCADE
			ON DELETE RESTRICT
	)`,
}

func (m *Manager) initSchema(ctx context.Context) error {
	conn, err := m.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	for _, stmt := range schemaStatements {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
