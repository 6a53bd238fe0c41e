package repository

import (
	"context"

	"github.com/bhel/hrm/internal/model"
)

const listCourses = `
SELECT id, title, description, duration_in_hours, department, capacity
FROM training_courses ORDER BY title`

func (q *Queries) ListCourses(ctx context.Context) ([]model.TrainingCourse, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return nil, err
	}
	defer q.db.Release(conn)

	rows, err := conn.QueryContext(ctx, listCourses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.TrainingCourse
	for rows.Next() {
		var c model.TrainingCourse
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.DurationInHours, &c.Department, &c.Capacity); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

const getCourseByID = `
SELECT id, title, description, duration_in_hours, department, capacity
FROM training_courses WHERE id = ?`

func (q *Queries) GetCourseByID(ctx context.Context, id int) (model.TrainingCourse, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return model.TrainingCourse{}, err
	}
	defer q.db.Release(conn)

	var c model.TrainingCourse
	err = conn.QueryRowContext(ctx, getCourseByID, id).
		Scan(&c.ID, &c.Title, &c.Description, &c.DurationInHours, &c.Department, &c.Capacity)
	return c, err
}

const createCourse = `
INSERT INTO training_courses (title, description, duration_in_hours, department, capacity)
VALUES (?, ?, ?, ?, ?)`

func (q *Queries) CreateCourse(ctx context.Context, c model.TrainingCourse) (int, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return 0, err
	}
	defer q.db.Release(conn)

	res, err := conn.ExecContext(ctx, createCourse,
		c.Title, c.Description, c.DurationInHours, c.Department, c.Capacity)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

const countEnrollments = `
SELECT COUNT(*) FROM course_enrollments WHERE course_id = ?`

func (q *Queries) CountEnrollments(ctx context.Context, courseID int) (int64, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return 0, err
	}
	defer q.db.Release(conn)

	var count int64
	err = conn.QueryRowContext(ctx, countEnrollments, courseID).Scan(&count)
	return count, err
}

const isEnrolled = `
SELECT COUNT(*) FROM course_enrollments WHERE course_id = ? AND employee_id = ?`

func (q *Queries) IsEnrolled(ctx context.Context, courseID, employeeID int) (bool, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return false, err
	}
	defer q.db.Release(conn)

	var count int64
	if err := conn.QueryRowContext(ctx, isEnrolled, courseID, employeeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

const createEnrollment = `
INSERT INTO course_enrollments (course_id, employee_id) VALUES (?, ?)`

func (q *Queries) CreateEnrollment(ctx context.Context, courseID, employeeID int) error {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return err
	}
	defer q.db.Release(conn)

	_, err = conn.ExecContext(ctx, createEnrollment, courseID, employeeID)
	return err
}
