package repository

import (
	"context"

	"github.com/bhel/hrm/internal/model"
)

const listEmployees = `
SELECT id, user_id, first_name, last_name, ic_passport
FROM employees ORDER BY last_name, first_name`

func (q *Queries) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return nil, err
	}
	defer q.db.Release(conn)

	rows, err := conn.QueryContext(ctx, listEmployees)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.UserID, &e.FirstName, &e.LastName, &e.ICPassport); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

const getEmployeeByID = `
SELECT id, user_id, first_name, last_name, ic_passport
FROM employees WHERE id = ?`

func (q *Queries) GetEmployeeByID(ctx context.Context, id int) (model.Employee, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return model.Employee{}, err
	}
	defer q.db.Release(conn)

	var e model.Employee
	err = conn.QueryRowContext(ctx, getEmployeeByID, id).
		Scan(&e.ID, &e.UserID, &e.FirstName, &e.LastName, &e.ICPassport)
	return e, err
}

const getEmployeeByUserID = `
SELECT id, user_id, first_name, last_name, ic_passport
FROM employees WHERE user_id = ?`

func (q *Queries) GetEmployeeByUserID(ctx context.Context, userID int) (model.Employee, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return model.Employee{}, err
	}
	defer q.db.Release(conn)

	var e model.Employee
	err = conn.QueryRowContext(ctx, getEmployeeByUserID, userID).
		Scan(&e.ID, &e.UserID, &e.FirstName, &e.LastName, &e.ICPassport)
	return e, err
}

const createEmployee = `
INSERT INTO employees (user_id, first_name, last_name, ic_passport)
VALUES (?, ?, ?, ?)`

func (q *Queries) CreateEmployee(ctx context.Context, e model.Employee) (int, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return 0, err
	}
	defer q.db.Release(conn)

	res, err := conn.ExecContext(ctx, createEmployee, e.UserID, e.FirstName, e.LastName, e.ICPassport)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

const updateEmployee = `
UPDATE employees SET first_name = ?, last_name = ?, ic_passport = ?
WHERE id = ?`

func (q *Queries) UpdateEmployee(ctx context.Context, e model.Employee) (int64, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return 0, err
	}
	defer q.db.Release(conn)

	res, err := conn.ExecContext(ctx, updateEmployee, e.FirstName, e.LastName, e.ICPassport, e.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteEmployee = `DELETE FROM employees WHERE id = ?`

func (q *Queries) DeleteEmployee(ctx context.Context, id int) (int64, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return 0, err
	}
	defer q.db.Release(conn)

	res, err := conn.ExecContext(ctx, deleteEmployee, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
