package repository

import (
	"context"
	"time"

	"github.com/bhel/hrm/internal/model"
)

const createLeaveApplication = `
INSERT INTO leave_applications (employee_id, start_date_time, end_date_time, type_id, status_id, reason)
VALUES (?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateLeaveApplication(ctx context.Context, l model.LeaveApplication) (int, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return 0, err
	}
	defer q.db.Release(conn)

	res, err := conn.ExecContext(ctx, createLeaveApplication,
		l.EmployeeID, l.Start, l.End, l.TypeID, l.StatusID, l.Reason)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

const getLeaveApplicationByID = `
SELECT id, employee_id, start_date_time, end_date_time, type_id, status_id, reason
FROM leave_applications WHERE id = ?`

func (q *Queries) GetLeaveApplicationByID(ctx context.Context, id int) (model.LeaveApplication, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return model.LeaveApplication{}, err
	}
	defer q.db.Release(conn)

	var l model.LeaveApplication
	err = conn.QueryRowContext(ctx, getLeaveApplicationByID, id).
		Scan(&l.ID, &l.EmployeeID, &l.Start, &l.End, &l.TypeID, &l.StatusID, &l.Reason)
	return l, err
}

const listLeaveByEmployee = `
SELECT id, employee_id, start_date_time, end_date_time, type_id, status_id, reason
FROM leave_applications WHERE employee_id = ?
ORDER BY start_date_time DESC`

func (q *Queries) ListLeaveByEmployee(ctx context.Context, employeeID int) ([]model.LeaveApplication, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return nil, err
	}
	defer q.db.Release(conn)

	rows, err := conn.QueryContext(ctx, listLeaveByEmployee, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []model.LeaveApplication
	for rows.Next() {
		var l model.LeaveApplication
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.Start, &l.End, &l.TypeID, &l.StatusID, &l.Reason); err != nil {
			return nil, err
		}
		applications = append(applications, l)
	}
	return applications, rows.Err()
}

const countOverlappingLeave = `
SELECT COUNT(*) FROM leave_applications
WHERE employee_id = ? AND status_id <> ? AND start_date_time < ? AND end_date_time > ?`

// CountOverlappingLeave counts non-rejected applications overlapping the
// [start, end) window.
func (q *Queries) CountOverlappingLeave(ctx context.Context, employeeID int, start, end time.Time) (int64, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return 0, err
	}
	defer q.db.Release(conn)

	var count int64
	err = conn.QueryRowContext(ctx, countOverlappingLeave,
		employeeID, model.LeaveStatusRejected, end, start).Scan(&count)
	return count, err
}

const updateLeaveStatus = `
UPDATE leave_applications SET status_id = ? WHERE id = ?`

func (q *Queries) UpdateLeaveStatus(ctx context.Context, id, statusID int) (int64, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return 0, err
	}
	defer q.db.Release(conn)

	res, err := conn.ExecContext(ctx, updateLeaveStatus, statusID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
