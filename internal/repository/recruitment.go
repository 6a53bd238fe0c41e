package repository

import (
	"context"

	"github.com/bhel/hrm/internal/model"
)

const listJobOpenings = `
SELECT id, title, description, department, status_id
FROM job_openings ORDER BY id DESC`

func (q *Queries) ListJobOpenings(ctx context.Context) ([]model.JobOpening, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return nil, err
	}
	defer q.db.Release(conn)

	rows, err := conn.QueryContext(ctx, listJobOpenings)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var openings []model.JobOpening
	for rows.Next() {
		var j model.JobOpening
		if err := rows.Scan(&j.ID, &j.Title, &j.Description, &j.Department, &j.StatusID); err != nil {
			return nil, err
		}
		openings = append(openings, j)
	}
	return openings, rows.Err()
}

const getJobOpeningByID = `
SELECT id, title, description, department, status_id
FROM job_openings WHERE id = ?`

func (q *Queries) GetJobOpeningByID(ctx context.Context, id int) (model.JobOpening, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return model.JobOpening{}, err
	}
	defer q.db.Release(conn)

	var j model.JobOpening
	err = conn.QueryRowContext(ctx, getJobOpeningByID, id).
		Scan(&j.ID, &j.Title, &j.Description, &j.Department, &j.StatusID)
	return j, err
}

const createJobOpening = `
INSERT INTO job_openings (title, description, department, status_id)
VALUES (?, ?, ?, ?)`

func (q *Queries) CreateJobOpening(ctx context.Context, j model.JobOpening) (int, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return 0, err
	}
	defer q.db.Release(conn)

	res, err := conn.ExecContext(ctx, createJobOpening,
		j.Title, j.Description, j.Department, j.StatusID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

const updateJobOpeningStatus = `
UPDATE job_openings SET status_id = ? WHERE id = ?`

func (q *Queries) UpdateJobOpeningStatus(ctx context.Context, id, statusID int) (int64, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return 0, err
	}
	defer q.db.Release(conn)

	res, err := conn.ExecContext(ctx, updateJobOpeningStatus, statusID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listApplicantsByOpening = `
SELECT id, job_opening_id, full_name, email, phone, status_id
FROM applicants WHERE job_opening_id = ? ORDER BY id`

func (q *Queries) ListApplicantsByOpening(ctx context.Context, jobOpeningID int) ([]model.Applicant, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return nil, err
	}
	defer q.db.Release(conn)

	rows, err := conn.QueryContext(ctx, listApplicantsByOpening, jobOpeningID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applicants []model.Applicant
	for rows.Next() {
		var a model.Applicant
		if err := rows.Scan(&a.ID, &a.JobOpeningID, &a.FullName, &a.Email, &a.Phone, &a.StatusID); err != nil {
			return nil, err
		}
		applicants = append(applicants, a)
	}
	return applicants, rows.Err()
}

const getApplicantByID = `
SELECT id, job_opening_id, full_name, email, phone, status_id
FROM applicants WHERE id = ?`

func (q *Queries) GetApplicantByID(ctx context.Context, id int) (model.Applicant, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return model.Applicant{}, err
	}
	defer q.db.Release(conn)

	var a model.Applicant
	err = conn.QueryRowContext(ctx, getApplicantByID, id).
		Scan(&a.ID, &a.JobOpeningID, &a.FullName, &a.Email, &a.Phone, &a.StatusID)
	return a, err
}

const createApplicant = `
INSERT INTO applicants (job_opening_id, full_name, email, phone, status_id)
VALUES (?, ?, ?, ?, ?)`

func (q *Queries) CreateApplicant(ctx context.Context, a model.Applicant) (int, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return 0, err
	}
	defer q.db.Release(conn)

	res, err := conn.ExecContext(ctx, createApplicant,
		a.JobOpeningID, a.FullName, a.Email, a.Phone, a.StatusID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

const updateApplicantStatus = `
UPDATE applicants SET status_id = ? WHERE id = ?`

func (q *Queries) UpdateApplicantStatus(ctx context.Context, id, statusID int) (int64, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return 0, err
	}
	defer q.db.Release(conn)

	res, err := conn.ExecContext(ctx, updateApplicantStatus, statusID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
