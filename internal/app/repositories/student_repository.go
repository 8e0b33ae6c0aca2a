package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tnpcell/portal/internal/app/models"
	"github.com/tnpcell/portal/internal/db"
	"github.com/tnpcell/portal/internal/pkg/apperrors"
	"github.com/tnpcell/portal/internal/pkg/dberrors"
	"github.com/tnpcell/portal/internal/pkg/logger"
)

const studentColumns = "id, email, roll_number, password, name, course, branch, year, phone_number, status, registered_at, created_at, updated_at"

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new student and returns its id. The unique constraints
// on email and roll_number are the authoritative duplicate guard under
// concurrent registrations.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("email", "roll_number", "password", "name", "course", "branch", "year", "phone_number", "status", "registered_at").
		Values(student.Email, student.RollNumber, student.Password, student.Name, student.Course,
			student.Branch, student.Year, student.PhoneNumber, student.Status, student.RegisteredAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_roll_number_key") {
			logger.Warn().Str("rollNumber", student.RollNumber).Msg("Attempted to register duplicate roll number")
			return 0, apperrors.ErrRollNumberExists
		}
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			logger.Warn().Str("email", student.Email).Msg("Attempted to register duplicate email")
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("rollNumber", student.RollNumber).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Int64("studentID", id).Str("rollNumber", student.RollNumber).Str("status", string(student.Status)).Msg("Student created")
	return id, nil
}

func (r *StudentRepository) getByColumn(ctx context.Context, column string, value interface{}) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns).
		From("students").
		Where(squirrel.Eq{column: value}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	var s models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.Email, &s.RollNumber, &s.Password, &s.Name, &s.Course, &s.Branch,
		&s.Year, &s.PhoneNumber, &s.Status, &s.RegisteredAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("column", column).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &s, nil
}

// GetByEmail retrieves a student by normalized email
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	return r.getByColumn(ctx, "email", email)
}

// GetByRollNumber retrieves a student by roll number
func (r *StudentRepository) GetByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error) {
	return r.getByColumn(ctx, "roll_number", rollNumber)
}

// GetByID retrieves a student by internal id
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getByColumn(ctx, "id", id)
}

// EmailExists checks whether a student exists with the given email
func (r *StudentRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"email": email})
}

// RollNumberExists checks whether a student exists with the given roll number
func (r *StudentRepository) RollNumberExists(ctx context.Context, rollNumber string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"roll_number": rollNumber})
}

func (r *StudentRepository) exists(ctx context.Context, pred squirrel.Eq) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("students").
		Where(pred).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build student exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}

	return exists, nil
}

// ListByStatus returns students in the given registration state
func (r *StudentRepository) ListByStatus(ctx context.Context, status models.StudentStatus) ([]models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns).
		From("students").
		Where(squirrel.Eq{"status": status}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	return r.scanStudents(ctx, sql, args)
}

// ListAll returns every student record
func (r *StudentRepository) ListAll(ctx context.Context) ([]models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns).
		From("students").
		OrderBy("roll_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	return r.scanStudents(ctx, sql, args)
}

func (r *StudentRepository) scanStudents(ctx context.Context, sql string, args []interface{}) ([]models.Student, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(
			&s.ID, &s.Email, &s.RollNumber, &s.Password, &s.Name, &s.Course, &s.Branch,
			&s.Year, &s.PhoneNumber, &s.Status, &s.RegisteredAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}

	return students, rows.Err()
}

// UpdateApproval flips a single student's registration state. Approving sets
// registered_at; unapproving clears it, fully reverting to the pending state.
func (r *StudentRepository) UpdateApproval(ctx context.Context, rollNumber string, approve bool) error {
	builder := r.approvalUpdate(approve).Where(squirrel.Eq{"roll_number": rollNumber})

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build approval update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("rollNumber", rollNumber).Msg("Error updating student approval")
		return fmt.Errorf("error updating student approval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	logger.Info().Str("rollNumber", rollNumber).Bool("approve", approve).Msg("Student approval updated")
	return nil
}

// BulkUpdateApproval applies the same state to every matching student in a
// single multi-row update and reports the number of modified records.
// Non-matching roll numbers are silently ignored.
func (r *StudentRepository) BulkUpdateApproval(ctx context.Context, rollNumbers []string, approve bool) (int64, error) {
	builder := r.approvalUpdate(approve).Where(squirrel.Eq{"roll_number": rollNumbers})

	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build bulk approval query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int("count", len(rollNumbers)).Msg("Error bulk updating student approval")
		return 0, fmt.Errorf("error bulk updating student approval: %w", err)
	}

	logger.Info().Int64("modified", tag.RowsAffected()).Bool("approve", approve).Msg("Bulk approval applied")
	return tag.RowsAffected(), nil
}

func (r *StudentRepository) approvalUpdate(approve bool) squirrel.UpdateBuilder {
	builder := r.sb.Update("students").Set("updated_at", squirrel.Expr("now()"))
	if approve {
		return builder.
			Set("status", models.StatusApproved).
			Set("registered_at", squirrel.Expr("now()"))
	}
	return builder.
		Set("status", models.StatusPending).
		Set("registered_at", nil)
}

// UpdateProfile updates the mutable profile fields of a student
func (r *StudentRepository) UpdateProfile(ctx context.Context, id int64, name, course, branch string, year int, phoneNumber string) error {
	sql, args, err := r.sb.Update("students").
		Set("name", name).
		Set("course", course).
		Set("branch", branch).
		Set("year", year).
		Set("phone_number", phoneNumber).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build profile update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// UpdatePassword replaces a student's password hash
func (r *StudentRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	sql, args, err := r.sb.Update("students").
		Set("password", passwordHash).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build password update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating student password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a single student row without touching applications.
// Used by self-cancellation, which only ever deletes pending students
// that cannot have applications yet.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}

// DeleteCascade removes a student and every application referencing them,
// in one transaction.
func (r *StudentRepository) DeleteCascade(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM applications WHERE student_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting student applications: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting student: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrStudentNotFound
		}

		logger.Info().Int64("studentID", id).Msg("Student deleted with applications")
		return nil
	})
}

// BulkDeleteCascade removes every student matching the roll numbers, along
// with their applications, in one transaction. Returns the number of
// deleted students.
func (r *StudentRepository) BulkDeleteCascade(ctx context.Context, rollNumbers []string) (int64, error) {
	var deleted int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`DELETE FROM applications WHERE student_id IN (SELECT id FROM students WHERE roll_number = ANY($1))`,
			rollNumbers)
		if err != nil {
			return fmt.Errorf("error deleting student applications: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM students WHERE roll_number = ANY($1)`, rollNumbers)
		if err != nil {
			return fmt.Errorf("error bulk deleting students: %w", err)
		}
		deleted = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info().Int64("deleted", deleted).Msg("Bulk student delete applied")
	return deleted, nil
}
